package service

import (
	"bytes"
	"context"
	"io"
	"net/http"

	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Matan-123/competitor_radar/app/display/internal/domain"
)

const (
	OperationIdentify        = "/radar.v1.Radar/Identify"
	OperationAnalyze         = "/radar.v1.Radar/Analyze"
	OperationGetAnalysis     = "/radar.v1.Radar/GetAnalysis"
	OperationListAnalyses    = "/radar.v1.Radar/ListAnalyses"
	OperationCompare         = "/radar.v1.Radar/Compare"
	OperationListComparisons = "/radar.v1.Radar/ListComparisons"
	OperationListInsights    = "/radar.v1.Radar/ListInsights"
	OperationGetInsight      = "/radar.v1.Radar/GetInsight"
	OperationSaveInsight     = "/radar.v1.Radar/SaveInsight"
	OperationDeleteInsight   = "/radar.v1.Radar/DeleteInsight"
	OperationClassify        = "/radar.v1.Radar/ClassifyFeedback"
)

// 反馈 CSV 上传上限
const maxFeedbackSize = 10 << 20

// RegisterRadarHTTPServer 注册 /v1 下的全部路由
func RegisterRadarHTTPServer(s *khttp.Server, srv *RadarService) {
	r := s.Route("/")
	r.POST("/v1/identify", identifyHandler(srv))
	r.POST("/v1/analyses", analyzeHandler(srv))
	r.GET("/v1/analyses", listAnalysesHandler(srv))
	r.GET("/v1/analyses/{company}", getAnalysisHandler(srv))
	r.POST("/v1/comparisons", compareHandler(srv))
	r.GET("/v1/comparisons", listComparisonsHandler(srv))
	r.GET("/v1/insights", listInsightsHandler(srv))
	r.GET("/v1/insights/{company}", getInsightHandler(srv))
	r.PUT("/v1/insights/{company}", saveInsightHandler(srv))
	r.DELETE("/v1/insights/{company}", deleteInsightHandler(srv))
	r.POST("/v1/feedback", classifyHandler(srv))
}

func identifyHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in domain.IdentifyRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, OperationIdentify)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Identify(ctx, req.(*domain.IdentifyRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func analyzeHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in domain.AnalyzeRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, OperationAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Analyze(ctx, req.(*domain.AnalyzeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func listAnalysesHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationListAnalyses)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return srv.ListAnalyses(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func getAnalysisHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		company := ctx.Vars().Get("company")
		khttp.SetOperation(ctx, OperationGetAnalysis)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return srv.GetAnalysis(ctx, company)
		})
		out, err := h(ctx, company)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func compareHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in domain.CompareRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, OperationCompare)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Compare(ctx, req.(*domain.CompareRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func listComparisonsHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationListComparisons)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return srv.ListComparisons(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func listInsightsHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationListInsights)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return srv.ListInsights(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func getInsightHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		company := ctx.Vars().Get("company")
		khttp.SetOperation(ctx, OperationGetInsight)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return srv.GetInsight(ctx, company)
		})
		out, err := h(ctx, company)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func saveInsightHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in domain.InsightRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		company := ctx.Vars().Get("company")
		khttp.SetOperation(ctx, OperationSaveInsight)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.SaveInsight(ctx, company, req.(*domain.InsightRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	}
}

func deleteInsightHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		company := ctx.Vars().Get("company")
		khttp.SetOperation(ctx, OperationDeleteInsight)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return nil, srv.DeleteInsight(ctx, company)
		})
		if _, err := h(ctx, company); err != nil {
			return err
		}
		ctx.Response().WriteHeader(http.StatusNoContent)
		return nil
	}
}

// classifyHandler 请求体为原始 CSV，响应同样为 CSV
func classifyHandler(srv *RadarService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		body := io.LimitReader(ctx.Request().Body, maxFeedbackSize)
		khttp.SetOperation(ctx, OperationClassify)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			var buf bytes.Buffer
			if err := srv.ClassifyFeedback(ctx, body, &buf); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Blob(http.StatusOK, "text/csv", out.([]byte))
	}
}
