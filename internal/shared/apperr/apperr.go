package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	Invalid         Kind = "invalid"          // caller input is malformed; not retried
	NotFound        Kind = "not_found"
	Config          Kind = "config"           // missing credentials/URLs; fatal for the request
	Upstream        Kind = "upstream"         // record store or gateway failed during a sync call
	GatewayRejected Kind = "gateway_rejected" // gateway declined the request, diagnostics attached
	Internal        Kind = "internal"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

// Constructors (PublicMsg should stay short and safe)
func InvalidErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Invalid, PublicMsg: publicMsg, Fields: fields}
}
func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}
func ConfigErr(publicMsg string) *AppError {
	return &AppError{Kind: Config, PublicMsg: publicMsg}
}
func UpstreamErr(publicMsg string, err error) *AppError {
	return &AppError{Kind: Upstream, PublicMsg: publicMsg, Err: err}
}
func GatewayRejectedErr(publicMsg string, err error) *AppError {
	return &AppError{Kind: GatewayRejected, PublicMsg: publicMsg, Err: err}
}

// Wrap: internal error without a public message (default 500)
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: Internal, PublicMsg: "Something went wrong.", Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Invalid:
			return http.StatusBadRequest
		case NotFound:
			return http.StatusNotFound
		case Config:
			return http.StatusInternalServerError
		case Upstream, GatewayRejected:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return "Something went wrong."
}
