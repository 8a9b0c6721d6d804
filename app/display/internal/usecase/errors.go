package usecase

import (
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/article"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/engine"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/feedback"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
)

// toAPIError 将引擎错误映射为带状态码的 kratos 错误
func toAPIError(err error) error {
	if err == nil {
		return nil
	}
	var fe *article.FetchError
	switch {
	case errors.Is(err, engine.ErrEmptyInput):
		return kerrors.BadRequest("EMPTY_INPUT", "input text or URL is empty").WithCause(err)
	case errors.Is(err, engine.ErrNoAnalyses):
		return kerrors.BadRequest("EMPTY_INPUT", err.Error()).WithCause(err)
	case errors.Is(err, feedback.ErrMissingFeedbackColumn):
		return kerrors.BadRequest("MISSING_FEEDBACK_COLUMN", err.Error()).WithCause(err)
	case errors.As(err, &fe):
		return kerrors.BadRequest("FETCH_FAILED", "could not retrieve text from "+fe.URL).WithCause(err)
	case llm.IsError(err):
		return kerrors.ServiceUnavailable("LLM_UNAVAILABLE", err.Error()).WithCause(err)
	}
	return err
}
