// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/color"
	"github.com/scrub-cli/scrub/constant"
	"github.com/scrub-cli/scrub/key"
	"github.com/scrub-cli/scrub/style"
	"github.com/spf13/viper"
)

// UnitMillis marks integer fields holding a duration or a position.
const UnitMillis = "ms"

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Unit is shown next to values, e.g. UnitMillis.
	Unit string

	// Allowed restricts string fields to a fixed set of values.
	Allowed []string

	// Positive rejects zero for integer fields.
	Positive bool
}

// Section is the first segment of the key, e.g. "controls" for controls.hide_delay.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Scrub + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts command line arguments into a value of the field's type.
// Integer fields reject negative numbers, and zero too when the field is Positive.
func (f *Field) Parse(args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing value", f.Key)
	}

	raw := args[0]

	switch f.Value.(type) {
	case []string:
		return args, nil
	case string:
		if len(f.Allowed) > 0 && !lo.Contains(f.Allowed, raw) {
			return nil, fmt.Errorf("%s must be one of %s, got %q", f.Key, strings.Join(f.Allowed, ", "), raw)
		}
		return raw, nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", f.Key, raw)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s must not be negative", f.Key)
		}
		if n == 0 && f.Positive {
			return nil, fmt.Errorf("%s must be greater than 0", f.Key)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", f.Key, raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Section     string   `json:"section"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Unit        string   `json:"unit,omitempty"`
		Allowed     []string `json:"allowed,omitempty"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Unit:        f.Unit,
		Allowed:     f.Allowed,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	if f.Value == nil {
		return "unknown"
	}
	return reflect.TypeOf(f.Value).String()
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func register(f Field) {
	if _, exists := Default[f.Key]; exists {
		panic("duplicate config key: " + f.Key)
	}

	Default[f.Key] = f
	EnvExposed = append(EnvExposed, f.Key)
}

func millis(k string, v int, desc string) {
	register(Field{Key: k, Value: v, Description: desc, Unit: UnitMillis})
}

func init() {
	millis(key.ControlsHideDelay, 2000, "How long the controls stay up after playback resumes from a seek")
	register(Field{
		Key:         key.ControlsProgressInterval,
		Value:       500,
		Description: "Interval between playback progress polls of mpv",
		Unit:        UnitMillis,
		Positive:    true,
	})
	millis(key.ControlsSeekStep, 5000, "Distance moved per arrow key press")
	register(Field{
		Key:         key.ControlsSeekStartedOnce,
		Value:       false,
		Description: "Tell seek hooks about a started seek once per drag instead of on every drag move",
	})

	register(Field{Key: key.SnapEnable, Value: true, Description: "Snap seeks that land close to a chapter start onto that chapter"})
	millis(key.SnapTolerance, 3000, "Largest distance between a seek target and a chapter start that still snaps")

	register(Field{
		Key:         key.HooksScript,
		Value:       "",
		Description: "Lua hook defining OnSeekStarted and/or OnSeekEnded, by name or path.\nType \"scrub hook new\" to scaffold one",
	})

	register(Field{Key: key.HistorySaveOnExit, Value: true, Description: "Save the playback position on exit so it can be resumed"})
	millis(key.HistoryMinPosition, 10000, "Positions this close to the start or the end are not resumed")

	register(Field{Key: key.PlayerArgs, Value: []string{}, Description: "Extra arguments passed to mpv"})

	register(Field{
		Key:         key.IconsVariant,
		Value:       "plain",
		Description: "Icons variant, nerd requires a nerd font",
		Allowed:     []string{"emoji", "kaomoji", "plain", "squares", "nerd"},
	})
	register(Field{Key: key.TUIItemSpacing, Value: 1, Description: "Blank lines between entries of the resume list"})

	register(Field{Key: key.LogsWrite, Value: false, Description: "Write logs"})
	register(Field{
		Key:         key.LogsLevel,
		Value:       "info",
		Description: "Log level, from less to most verbose",
		Allowed:     []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"},
	})
	register(Field{Key: key.LogsJson, Value: false, Description: "Use json format for logs"})

	register(Field{Key: key.CliColored, Value: true, Description: "Enable colored CLI output"})
	register(Field{Key: key.CliVersionCheck, Value: true, Description: "Check for new releases when showing help"})
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(f *Field) string { return f.typeName() },
	"join":     strings.Join,
	"hl": func(v any, unit string) string {
		switch value := v.(type) {
		case bool:
			if value {
				return style.Fg(color.Green)("true")
			}
			return style.Fg(color.Red)("false")
		case string:
			return style.Fg(color.Yellow)(strconv.Quote(value))
		default:
			if unit != "" {
				return fmt.Sprintf("%v%s", value, style.Faint(unit))
			}
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) .Unit }}
{{ blue "Default:" }} {{ hl .Value .Unit }}
{{ blue "Type:" }}    {{ typename . }}{{ with .Allowed }}
{{ blue "Allowed:" }} {{ join . ", " }}{{ end }}`))
