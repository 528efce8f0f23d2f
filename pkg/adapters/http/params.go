package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/sequence"
)

// GetTraceParams defines parameters for GetTrace.
type GetTraceParams struct {
	Name   string
	Cycles int
}

// GetStableStatesParams defines parameters for GetStableStates.
type GetStableStatesParams struct {
	Kind  string
	Drive string
}

// SubscribeEventsParams defines parameters for SubscribeEvents.
type SubscribeEventsParams struct {
	Circuit *string
}

func bindTraceParams(r *http.Request) (GetTraceParams, error) {
	var p GetTraceParams
	if err := runtime.BindStyledParameterWithLocation("simple", false, "name", runtime.ParamLocationPath, chi.URLParam(r, "name"), &p.Name); err != nil {
		return p, fmt.Errorf("invalid format for parameter name: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "cycles", r.URL.Query(), &p.Cycles); err != nil {
		return p, fmt.Errorf("invalid format for parameter cycles: %w", err)
	}
	return p, nil
}

func bindStableParams(r *http.Request) (GetStableStatesParams, error) {
	var p GetStableStatesParams
	if err := runtime.BindStyledParameterWithLocation("simple", false, "kind", runtime.ParamLocationPath, chi.URLParam(r, "kind"), &p.Kind); err != nil {
		return p, fmt.Errorf("invalid format for parameter kind: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "drive", r.URL.Query(), &p.Drive); err != nil {
		return p, fmt.Errorf("invalid format for parameter drive: %w", err)
	}
	return p, nil
}

func bindEventsParams(r *http.Request) (SubscribeEventsParams, error) {
	var p SubscribeEventsParams
	if err := runtime.BindQueryParameter("form", true, false, "circuit", r.URL.Query(), &p.Circuit); err != nil {
		return p, fmt.Errorf("invalid format for parameter circuit: %w", err)
	}
	return p, nil
}

// resolve re-resolves a match result under a request-level policy.
func resolve(res domain.MatchResult, policy string) (answer, answerErr string, err error) {
	p, err := sequence.ParsePolicy(policy)
	if err != nil {
		return "", err.Error(), err
	}
	answer, err = sequence.Resolve(res, p)
	if err != nil {
		return "", err.Error(), err
	}
	return answer, "", nil
}
