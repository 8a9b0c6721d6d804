package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/chunker"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/config"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/logger"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/naming"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/search"
)

var (
	// ErrEmptyInput 输入文本或抓取到的正文为空
	ErrEmptyInput = errors.New("empty input")
	// ErrNoSearcher 未配置搜索提供方
	ErrNoSearcher = errors.New("no search provider configured")
	// ErrNoResearchResults 搜索结果中没有可用的正文
	ErrNoResearchResults = errors.New("no usable search results")
)

const (
	researchMaxResults  = 10
	researchMaxArticles = 6
	researchMinSnippet  = 500
	researchMinContent  = 100
)

// Cache 报告缓存，未命中时返回 nil, nil
type Cache interface {
	Get(ctx context.Context, key string) (*model.Report, error)
	Set(ctx context.Context, key string, report *model.Report) error
}

// Engine 核心处理引擎：识别、分块分析、合并、摘要与对比
type Engine struct {
	identifier *Identifier
	analyzer   *ChunkAnalyzer
	aggregator *Aggregator
	summarizer *Summarizer
	comparator *Comparator

	fetcher  article.Fetcher
	searcher search.Searcher
	cache    Cache

	maxLength int
	workers   int
}

// Option Engine 选项
type Option func(*Engine)

// WithSearcher 启用按公司名称搜索
func WithSearcher(s search.Searcher) Option {
	return func(e *Engine) { e.searcher = s }
}

// WithCache 启用报告缓存
func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// NewEngine 创建引擎实例，client 在进程内共享
func NewEngine(cfg *config.Config, client llm.Client, fetcher article.Fetcher, opts ...Option) *Engine {
	maxLength := cfg.Chunk.MaxLength
	if maxLength <= 0 {
		maxLength = chunker.DefaultMaxLength
	}
	workers := cfg.Concurrency.Workers
	if workers <= 0 {
		workers = 3
	}

	e := &Engine{
		identifier: NewIdentifier(client, fetcher, maxLength),
		analyzer:   NewChunkAnalyzer(client),
		aggregator: NewAggregator(client),
		summarizer: NewSummarizer(client),
		comparator: NewComparator(client),
		fetcher:    fetcher,
		maxLength:  maxLength,
		workers:    workers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Identify 识别输入对应的公司名称
func (e *Engine) Identify(ctx context.Context, input string) (string, error) {
	return e.identifier.Identify(ctx, input)
}

// Analyze 对文本或链接执行完整分析流程
func (e *Engine) Analyze(ctx context.Context, input string) (*model.Report, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	key := reportKey(input)
	if cached := e.cached(ctx, key); cached != nil {
		return cached, nil
	}

	runID := uuid.NewString()
	log := logger.WithRun(runID)

	var (
		text     string
		source   string
		identify func(ctx context.Context) (string, error)
	)
	if article.IsURL(input) {
		art, err := e.fetcher.Fetch(ctx, input)
		if err != nil {
			return nil, err
		}
		text, source = art.Text(), input
		identify = func(ctx context.Context) (string, error) {
			return e.identifier.FromArticle(ctx, input, art), nil
		}
	} else {
		text = input
		// 名称识别失败不影响分析结果
		identify = func(ctx context.Context) (string, error) {
			name, err := e.identifier.Extract(ctx, text)
			if err != nil {
				if !llm.IsError(err) {
					return "", err
				}
				log.Warnf("识别公司名称失败，使用 %s: %v", model.UnknownCompany, err)
				return model.UnknownCompany, nil
			}
			return name, nil
		}
	}

	log.Infof("开始分析，来源: %s", describeSource(source))
	report, err := e.run(ctx, log, runID, text, identify)
	if err != nil {
		return nil, err
	}
	report.Source = source

	e.store(ctx, key, report)
	return report, nil
}

// Compare 并行分析两份输入并生成对比
func (e *Engine) Compare(ctx context.Context, inputA, inputB string) (*model.Comparison, error) {
	var reportA, reportB *model.Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := e.Analyze(gctx, inputA)
		if err != nil {
			return fmt.Errorf("company A: %w", err)
		}
		reportA = r
		return nil
	})
	g.Go(func() error {
		r, err := e.Analyze(gctx, inputB)
		if err != nil {
			return fmt.Errorf("company B: %w", err)
		}
		reportB = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.comparator.Compare(ctx, reportA.Company, reportA.Analysis, reportB.Company, reportB.Analysis)
}

// Research 按公司名称搜索相关报道并分析
func (e *Engine) Research(ctx context.Context, company string) (*model.Report, error) {
	company = naming.Normalize(company)
	if company == "" {
		return nil, ErrEmptyInput
	}
	if e.searcher == nil {
		return nil, ErrNoSearcher
	}

	runID := uuid.NewString()
	log := logger.WithRun(runID)

	resp, err := e.searcher.Search(ctx, &search.Request{
		Query:             company,
		Topic:             "news",
		MaxResults:        researchMaxResults,
		IncludeRawContent: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", company, err)
	}
	log.Debugf("搜索 [%s] 返回 %d 条结果", company, len(resp.Results))

	var sb strings.Builder
	used := 0
	for _, item := range resp.Results {
		content := item.Text()
		if len([]rune(content)) < researchMinSnippet && item.URL != "" {
			if art, err := e.fetcher.Fetch(ctx, item.URL); err == nil && len(art.Content) > len(content) {
				content = art.Content
			} else if err != nil {
				log.Debugf("抓取正文失败 [%s]: %v", item.URL, err)
			}
		}
		if len([]rune(content)) <= researchMinContent {
			continue
		}
		if used > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(item.Title)
		sb.WriteString("\n\n")
		sb.WriteString(content)
		used++
		if used >= researchMaxArticles {
			break
		}
	}
	if used == 0 {
		log.Warnf("公司 [%s] 未找到足够的有效文章", company)
		return nil, ErrNoResearchResults
	}

	log.Infof("开始分析 [%s]，使用 %d 篇文章", company, used)
	return e.run(ctx, log, runID, sb.String(), func(context.Context) (string, error) {
		return company, nil
	})
}

// run 分块、并发分析、合并并生成摘要，公司识别与分析并行
func (e *Engine) run(ctx context.Context, log *logrus.Entry, runID, text string, identify func(context.Context) (string, error)) (*model.Report, error) {
	chunks := chunker.Split(text, e.maxLength)
	if len(chunks) == 0 {
		return nil, ErrEmptyInput
	}
	log.Infof("文本拆分为 %d 个分块", len(chunks))

	var (
		company  string
		analysis *model.Analysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := identify(gctx)
		if err != nil {
			return err
		}
		company = name
		return nil
	})
	g.Go(func() error {
		doc, err := e.analyzeChunks(gctx, chunks)
		if err != nil {
			return err
		}
		analysis = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Errorf("分析失败: %v", err)
		return nil, err
	}

	summary, err := e.summarizer.Summarize(ctx, analysis)
	if err != nil {
		log.Errorf("生成摘要失败: %v", err)
		return nil, err
	}

	log.Infof("分析完成: %s", company)
	return &model.Report{
		ID:        runID,
		Company:   company,
		Analysis:  analysis,
		Summary:   summary,
		Chunks:    len(chunks),
		CreatedAt: time.Now(),
	}, nil
}

// analyzeChunks 在有限并发下分析所有分块，结果保持分块顺序
func (e *Engine) analyzeChunks(ctx context.Context, chunks []string) (*model.Analysis, error) {
	partials := make([]*model.Analysis, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			doc, err := e.analyzer.Analyze(gctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			partials[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.aggregator.Combine(ctx, partials)
}

func (e *Engine) cached(ctx context.Context, key string) *model.Report {
	if e.cache == nil {
		return nil
	}
	report, err := e.cache.Get(ctx, key)
	if err != nil {
		logger.Log.Warnf("读取缓存失败: %v", err)
		return nil
	}
	if report != nil {
		logger.Log.Infof("命中缓存: %s", report.Company)
	}
	return report
}

func (e *Engine) store(ctx context.Context, key string, report *model.Report) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, key, report); err != nil {
		logger.Log.Warnf("写入缓存失败: %v", err)
	}
}

// reportKey 以输入内容的 SHA-256 作为缓存键
func reportKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return "report:" + hex.EncodeToString(sum[:])
}

func describeSource(source string) string {
	if source == "" {
		return "text"
	}
	return source
}
