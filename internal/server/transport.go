package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type inProcess struct{ app *fiber.App }

// Transport serves HTTP client requests straight from app without a listener. The
// request's context still bounds how long the caller waits.
func Transport(app *fiber.App) http.RoundTripper { return inProcess{app: app} }

func (t inProcess) RoundTrip(req *http.Request) (*http.Response, error) {
	type result struct {
		resp *http.Response
		err  error
	}
	ctx := req.Context()
	done := make(chan result, 1)
	go func() {
		resp, err := t.app.Test(req.Clone(ctx), -1)
		done <- result{resp, err}
	}()
	select {
	case r := <-done:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
