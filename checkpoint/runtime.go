package checkpoint

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/blockrunner/geom"
	"github.com/milk9111/blockrunner/physics"
	"github.com/milk9111/blockrunner/prefabs"
	"github.com/rs/zerolog"
)

// DefaultScript claims each checkpoint the first time the actor stands in it.
const DefaultScript = "checkpoints.tengo"

const dispatchScript = `
if __phase == "update" {
	update(__engine, __state)
} else if __phase == "event" {
	on_event(__engine, __state, __event)
}
`

// Frame is what a script sees of one tick.
type Frame struct {
	Snapshot   physics.Snapshot
	Checkpoint int // index of the checkpoint the actor stands in, -1 for none
	Respawn    geom.Vec3
}

// Runtime runs a checkpoint script once per tick. Its only lever on the
// controller is the respawn point it returns.
type Runtime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	log      zerolog.Logger
	logs     []string
}

// Load compiles the named script from prefabs/scripts.
func Load(path string) (*Runtime, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultScript
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: load %s: %w", path, err)
	}
	return Compile(path, src)
}

// Compile builds a runtime from script source. The script must define
// update(engine, state) and on_event(engine, state, name).
func Compile(path string, src []byte) (*Runtime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__event", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("checkpoint: compile %s: %w", path, err)
	}
	return &Runtime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      zerolog.Nop(),
	}, nil
}

func (rt *Runtime) SetLogger(l zerolog.Logger) {
	rt.log = l.With().Str("script", rt.path).Logger()
}

// Reset forgets everything the script stored, e.g. claimed checkpoints.
func (rt *Runtime) Reset() {
	rt.state = &tengo.Map{Value: map[string]tengo.Object{}}
}

// Logs drains the lines the script passed to engine.log.
func (rt *Runtime) Logs() []string {
	out := rt.logs
	rt.logs = nil
	return out
}

// Update runs the script's update hook and then on_event once per event.
// It returns the respawn point the script settled on and whether it
// changed. A failing script is logged and leaves the respawn point alone.
func (rt *Runtime) Update(f Frame, events []physics.Event) (geom.Vec3, bool) {
	respawn := f.Respawn
	changed := false
	engine := rt.engine(f, func(p geom.Vec3) {
		respawn = p
		changed = true
	})

	if err := rt.run("update", "", engine); err != nil {
		rt.log.Error().Err(err).Msg("checkpoint update failed")
		return f.Respawn, false
	}
	for _, ev := range events {
		if err := rt.run("event", string(ev.Kind), engine); err != nil {
			rt.log.Error().Err(err).Str("event", string(ev.Kind)).Msg("checkpoint on_event failed")
			return f.Respawn, false
		}
	}
	return respawn, changed
}

func (rt *Runtime) run(phase, event string, engine *tengo.ImmutableMap) (err error) {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	// tengo panics on some runtime faults, e.g. integer division by zero
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("checkpoint: %s: %v", rt.path, r)
		}
	}()
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__event", event); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (rt *Runtime) engine(f Frame, setRespawn func(geom.Vec3)) *tengo.ImmutableMap {
	snap := f.Snapshot
	values := map[string]tengo.Object{}

	values["alive"] = &tengo.UserFunction{Name: "alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(snap.Alive), nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(snap.Grounded), nil
	}}

	values["completed"] = &tengo.UserFunction{Name: "completed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(snap.Completed), nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(snap.Tick)}, nil
	}}

	values["checkpoint"] = &tengo.UserFunction{Name: "checkpoint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(f.Checkpoint)}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(snap.Position), nil
	}}

	values["get_respawn"] = &tengo.UserFunction{Name: "get_respawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(f.Respawn), nil
	}}

	values["set_respawn"] = &tengo.UserFunction{Name: "set_respawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		var p [3]float64
		for i, arg := range args {
			v, ok := tengo.ToFloat64(arg)
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "coordinate", Expected: "float", Found: arg.TypeName()}
			}
			p[i] = v
		}
		pos := geom.V(p[0], p[1], p[2])
		if !pos.Finite() {
			return tengo.FalseValue, nil
		}
		setRespawn(pos)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		line := strings.Join(parts, " ")
		rt.logs = append(rt.logs, line)
		rt.log.Info().Msg(line)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vecObject(v geom.Vec3) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
		&tengo.Float{Value: v.Z},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
