package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		ID:        "run-1",
		Company:   "Profit Gym",
		Analysis:  model.NewAnalysis("A boutique gym chain"),
		Summary:   "Profit Gym sells coaching.",
		Chunks:    2,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestReportCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewWithClient(db, time.Hour)
	ctx := context.TODO()

	report := sampleReport()
	data, err := json.Marshal(report)
	require.NoError(t, err)

	mock.ExpectSet("report:abc", string(data), time.Hour).SetVal("OK")
	assert.NoError(t, c.Set(ctx, "report:abc", report))

	mock.ExpectSet("report:abc", string(data), time.Hour).SetErr(errors.New("redis error"))
	err = c.Set(ctx, "report:abc", report)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis set failure")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCache_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewWithClient(db, time.Hour)
	ctx := context.TODO()

	data, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	mock.ExpectGet("report:abc").SetVal(string(data))
	got, err := c.Get(ctx, "report:abc")
	require.NoError(t, err)
	assert.Equal(t, "Profit Gym", got.Company)
	assert.Equal(t, "A boutique gym chain", got.Analysis.Body(0))
	assert.Equal(t, model.NotSpecified, got.Analysis.Body(1))

	mock.ExpectGet("report:missing").RedisNil()
	got, err = c.Get(ctx, "report:missing")
	assert.NoError(t, err)
	assert.Nil(t, got)

	mock.ExpectGet("report:abc").SetErr(errors.New("redis error"))
	_, err = c.Get(ctx, "report:abc")
	assert.Contains(t, err.Error(), "redis get failure")

	// 五段式不完整的缓存内容视为错误
	mock.ExpectGet("report:bad").SetVal(`{"company":"x","analysis":{"sections":[]}}`)
	_, err = c.Get(ctx, "report:bad")
	assert.ErrorIs(t, err, model.ErrMalformedAnalysis)

	assert.NoError(t, mock.ExpectationsWereMet())
}
