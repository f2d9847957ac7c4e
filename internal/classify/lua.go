package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flarebyte/irshim/internal/config"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// HookError reports a failing or misbehaving Lua classification hook.
type HookError struct {
	Unit    string
	Message string
}

func (e *HookError) Error() string {
	if e.Unit == "" {
		return "classify hook: " + e.Message
	}
	return fmt.Sprintf("classify hook (%s): %s", e.Unit, e.Message)
}

// LuaFunc compiles code into a tooling Func. The chunk sees the globals
// unit, outDir, binary, hasTarget, crossTarget and args, and must return a
// boolean. Each call runs in a fresh sandboxed state, so the returned Func is
// safe for concurrent use.
func LuaFunc(code string, timeout time.Duration) (Func, error) {
	chunk, err := parse.Parse(strings.NewReader(code), "classify")
	if err != nil {
		return nil, &HookError{Message: sanitize(err.Error())}
	}
	proto, err := lua.Compile(chunk, "classify")
	if err != nil {
		return nil, &HookError{Message: sanitize(err.Error())}
	}
	return func(f Facts, cfg config.Engine) (bool, error) {
		return runHook(proto, timeout, f, cfg)
	}, nil
}

func runHook(proto *lua.FunctionProto, timeout time.Duration, f Facts, cfg config.Engine) (bool, error) {
	L := newSandbox()
	defer L.Close()
	if timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		L.SetContext(ctx)
	}

	L.SetGlobal("unit", lua.LString(f.Unit))
	L.SetGlobal("outDir", lua.LString(f.OutDir))
	L.SetGlobal("binary", lua.LBool(f.Binary))
	L.SetGlobal("hasTarget", lua.LBool(f.HasTarget))
	L.SetGlobal("crossTarget", lua.LString(cfg.Target))
	args := L.NewTable()
	for i, a := range f.Args {
		args.RawSetInt(i+1, lua.LString(a))
	}
	L.SetGlobal("args", args)

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, 1, nil); err != nil {
		msg := sanitize(err.Error())
		if strings.Contains(strings.ToLower(msg), "deadline") {
			msg = "timeout"
		}
		return false, &HookError{Unit: f.Unit, Message: msg}
	}
	ret := L.Get(-1)
	L.Pop(1)
	b, ok := ret.(lua.LBool)
	if !ok {
		return false, &HookError{Unit: f.Unit, Message: "expected boolean result, got " + ret.Type().String()}
	}
	return bool(b), nil
}

func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return L
}

func sanitize(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}
