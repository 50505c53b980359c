package dispatch

import (
	"time"

	"github.com/cleo-engine/cleo/internal/audit"
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/diagnostics"
	"github.com/cleo-engine/cleo/internal/project"
)

// ProtocolFilter validates pipeline-domain operations before they route,
// returning the protocol's MUST-violation sentinel when validation fails in
// strict mode. Non-pipeline operations are passed through untouched.
type ProtocolFilter func(req Request) error

// Dispatcher is the single entry point every adapter calls through: it runs
// the fixed middleware pipeline, then the registered handler.
type Dispatcher struct {
	ctx         *project.Context
	registry    *Registry
	limiter     *RateLimiter
	protocol    ProtocolFilter
	audit       *audit.Recorder
	diagnostics *diagnostics.Logger
}

// Options configures optional middleware stages.
type Options struct {
	RateLimiter *RateLimiter
	Protocol    ProtocolFilter
	Diagnostics *diagnostics.Logger
}

// New builds a Dispatcher bound to ctx and registry, wiring audit logging
// from ctx.Layout.LogFile and any optional middleware in opts.
func New(ctx *project.Context, registry *Registry, opts Options) *Dispatcher {
	lockTimeout := time.Duration(ctx.Config.LockTimeoutSeconds()) * time.Second
	return &Dispatcher{
		ctx:         ctx,
		registry:    registry,
		limiter:     opts.RateLimiter,
		protocol:    opts.Protocol,
		audit:       audit.NewRecorder(ctx.Layout.LogFile, lockTimeout),
		diagnostics: opts.Diagnostics,
	}
}

// Dispatch runs req through sanitise, rate-limit, protocol-filter, and
// routing, then records the outcome in the audit log (and the diagnostics
// log when one is configured), always returning a populated Envelope rather than a bare
// error, so adapters only need to render it.
func (d *Dispatcher) Dispatch(req Request) Envelope {
	start := time.Now()
	req.Params = sanitize(req.Params)

	meta := EnvelopeMeta{
		Gateway:   req.Gateway,
		Domain:    req.Domain,
		Operation: req.Operation,
		Version:   ProtocolVersion,
		Timestamp: start.UTC(),
	}

	finish := func(data any, err error) Envelope {
		meta.DurationMS = time.Since(start).Milliseconds()
		env := Envelope{Meta: meta, Success: err == nil, Data: data}
		errorCode := ""
		if err != nil {
			code := cerr.CodeOf(err)
			errorCode = code.Name
			env.Error = &EnvelopeError{Code: code.Name, Message: err.Error()}
		}
		_ = d.audit.Event(req.SessionID, string(req.Domain)+"."+req.Operation, req.Actor, map[string]any{
			"gateway": req.Gateway,
			"success": env.Success,
		})
		if d.diagnostics != nil {
			d.diagnostics.Log(diagnostics.Entry{
				Gateway:    string(req.Gateway),
				Domain:     string(req.Domain),
				Operation:  req.Operation,
				DurationMS: meta.DurationMS,
				Success:    env.Success,
				ErrorCode:  errorCode,
			})
		}
		return env
	}

	if d.limiter != nil && !d.limiter.Allow(req.Gateway) {
		return finish(nil, cerr.ErrInputInvalid.New("rate limit exceeded for %s gateway", req.Gateway))
	}

	if d.protocol != nil && req.Domain == DomainPipeline {
		if err := d.protocol(req); err != nil {
			return finish(nil, err)
		}
	}

	def, ok := d.registry.Lookup(req.Domain, req.Operation)
	if !ok {
		return finish(nil, cerr.ErrInvalidOperation.New("no such operation %s.%s", req.Domain, req.Operation))
	}
	if req.Gateway != def.Gateway {
		return finish(nil, cerr.ErrInvalidOperation.New("%s is a %s operation, not %s", def.describe(), def.Gateway, req.Gateway))
	}
	if missing := def.MissingParams(req.Params); len(missing) > 0 {
		return finish(nil, cerr.ErrInputMissing.New("missing required params %v for %s", missing, def.describe()))
	}

	data, err := def.Handler(req)
	return finish(data, err)
}
