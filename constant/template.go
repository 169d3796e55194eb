package constant

// Hook Function Identifiers - the global functions a Lua seek hook may define.
const (
	OnSeekStartedFn = "OnSeekStarted"
	OnSeekEndedFn   = "OnSeekEnded"
	SeekFn          = "seek"
)

// HookTemplate is a Go text/template for scaffolding new Lua seek hooks.
const HookTemplate = `{{ $divider := repeat "-" (plus (max (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


----- MAIN -----

--- Called on every drag move of the seek bar.
-- @return boolean true to take over the time label for this drag
function {{ .OnSeekStartedFn }}()
	return false
end


--- Called when the drag ends.
-- @param position number Target position in milliseconds
-- @return boolean true if the hook performed the seek itself (see {{ .SeekFn }}(ms))
function {{ .OnSeekEndedFn }}(position)
	return false
end


--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
