package hook

import (
	"io"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/constant"
)

var scaffold = lo.Must(template.New("hook").Funcs(template.FuncMap{
	"repeat": strings.Repeat,
	"plus":   func(a, b int) int { return a + b },
	"max":    func(items ...int) int { return lo.Max(items) },
}).Parse(constant.HookTemplate))

// Scaffold writes a new hook script skeleton defining both hook functions.
func Scaffold(w io.Writer, name, author string) error {
	return scaffold.Execute(w, struct {
		Name            string
		Author          string
		OnSeekStartedFn string
		OnSeekEndedFn   string
		SeekFn          string
	}{
		Name:            name,
		Author:          author,
		OnSeekStartedFn: constant.OnSeekStartedFn,
		OnSeekEndedFn:   constant.OnSeekEndedFn,
		SeekFn:          constant.SeekFn,
	})
}
