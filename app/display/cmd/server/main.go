package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/display/internal/conf"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name = "competitor_radar.display"
	// Version 是服务的版本号
	Version string
	// flagconf 配置文件路径
	flagconf string
	// flaglevel 服务日志级别
	flaglevel string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/display/configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flaglevel, "level", "info", "log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := log.NewFilter(
		log.With(log.NewStdLogger(os.Stdout),
			"ts", log.DefaultTimestamp,
			"caller", log.DefaultCaller,
			"service.id", id,
			"service.name", Name,
			"service.version", Version,
		),
		log.FilterLevel(log.ParseLevel(flaglevel)),
	)

	bc, err := loadBootstrap(flagconf)
	if err != nil {
		log.NewHelper(logger).Fatalf("load config %s: %v", flagconf, err)
	}

	app, cleanup, err := initApp(bc.Server, bc.Data, bc.Radar, logger)
	if err != nil {
		log.NewHelper(logger).Fatalf("init app: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		log.NewHelper(logger).Errorf("app stopped: %v", err)
	}
}

// loadBootstrap 读取配置文件，缺少 radar 段时保留空值由默认配置补全
func loadBootstrap(path string) (*conf.Bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(path)))
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, err
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, fmt.Errorf("scan bootstrap: %w", err)
	}
	if bc.Server == nil {
		bc.Server = &conf.Server{}
	}
	return &bc, nil
}
