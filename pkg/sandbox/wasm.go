package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/tetratelabs/wazero"
)

// CustomRuntimeConfig bounds an operator-supplied WASM extraction profile:
// a hard memory ceiling plus a deadline standing in for wazero's lack of a
// portable fuel/epoch budget across compilation backends.
type CustomRuntimeConfig struct {
	MemoryLimitPages uint32 // 64 KiB pages; 256 = 16 MiB
	Deadline         time.Duration
}

// DefaultCustomRuntimeConfig caps a custom module at 16 MiB and five
// seconds of wall-clock budget, matching the operator-profile ceiling the
// built-in regex modules never need to approach.
func DefaultCustomRuntimeConfig() CustomRuntimeConfig {
	return CustomRuntimeConfig{MemoryLimitPages: 256, Deadline: 5 * time.Second}
}

// CustomRuntime hosts one operator-supplied WASM module under a
// memory-limited wazero runtime, instantiated fresh per CustomRuntime since
// custom profiles are rare and not worth pooling the way built-in regex
// modules are.
type CustomRuntime struct {
	cfg     CustomRuntimeConfig
	runtime wazero.Runtime
	module  wazero.CompiledModule
}

// NewCustomRuntime compiles wasmBinary under a bounded wazero runtime. The
// compile itself happens eagerly so a bad operator-supplied module fails at
// load time rather than on the first extraction request.
func NewCustomRuntime(ctx context.Context, wasmBinary []byte, cfg CustomRuntimeConfig) (*CustomRuntime, error) {
	rtCfg := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(cfg.MemoryLimitPages).
		WithCloseOnContextDone(true)
	runtime := wazero.NewRuntimeWithConfig(ctx, rtCfg)

	compiled, err := runtime.CompileModule(ctx, wasmBinary)
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("sandbox: compile custom module: %w", err)
	}
	return &CustomRuntime{cfg: cfg, runtime: runtime, module: compiled}, nil
}

// Run instantiates the compiled module and invokes its exported "extract"
// function, treating the runtime's context deadline firing mid-call as
// ResourceExhausted rather than a generic internal error, since that's the
// operationally meaningful distinction for a caller deciding whether to
// fall back to the native parser.
func (r *CustomRuntime) Run(ctx context.Context, html []byte) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.cfg.Deadline)
	defer cancel()

	mod, err := r.runtime.InstantiateModule(runCtx, r.module, wazero.NewModuleConfig())
	if err != nil {
		if runCtx.Err() != nil {
			return nil, &Error{Kind: FailureResourceExhausted, Msg: "custom module instantiation exceeded deadline"}
		}
		return nil, &Error{Kind: FailureInternal, Msg: fmt.Sprintf("instantiate custom module: %v", err)}
	}
	defer mod.Close(runCtx)

	extract := mod.ExportedFunction("extract")
	if extract == nil {
		return nil, &Error{Kind: FailureInternal, Msg: "custom module has no exported extract function"}
	}

	mem := mod.Memory()
	if mem == nil {
		return nil, &Error{Kind: FailureInternal, Msg: "custom module exports no memory"}
	}
	inputOffset := mem.Size() - uint32(len(html))
	if !mem.Write(inputOffset, html) {
		return nil, &Error{Kind: FailureResourceExhausted, Msg: "custom module memory too small for input"}
	}

	// extract(ptr, len) returns a packed (outPtr<<32 | outLen) per the
	// operator-module ABI: a single result register, no host callback.
	results, err := extract.Call(runCtx, uint64(inputOffset), uint64(len(html)))
	if err != nil {
		if runCtx.Err() != nil {
			return nil, &Error{Kind: FailureResourceExhausted, Msg: "custom module extraction exceeded deadline"}
		}
		return nil, &Error{Kind: FailureInternal, Msg: fmt.Sprintf("custom module extract call: %v", err)}
	}
	if len(results) != 1 {
		return nil, &Error{Kind: FailureInternal, Msg: "custom module extract must return one packed pointer/length value"}
	}

	packed := results[0]
	outPtr := uint32(packed >> 32)
	outLen := uint32(packed)
	out, ok := mem.Read(outPtr, outLen)
	if !ok {
		return nil, &Error{Kind: FailureInternal, Msg: "custom module returned an out-of-bounds output region"}
	}
	return append([]byte(nil), out...), nil
}

// Close releases the underlying wazero runtime and all its resources.
func (r *CustomRuntime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}
