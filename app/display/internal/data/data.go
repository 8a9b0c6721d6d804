package data

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/storage"
	"github.com/Matan-123/competitor_radar/app/display/internal/conf"
)

type Data struct {
	store *storage.Storage
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	driver, source := storage.DriverSQLite, "competitor_radar.db"
	if c != nil && c.Database != nil {
		if c.Database.Driver != "" {
			driver = c.Database.Driver
		}
		if c.Database.Source != "" {
			source = c.Database.Source
		}
	}

	store, err := storage.Open(context.Background(), driver, source)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

// notFound 将存储层的 ErrNotFound 转换为 kratos 错误
func notFound(err error, reason, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return kerrors.NotFound(reason, message)
	}
	return err
}
