/*
Package log provides global output control for the whole application. Logging comes in
four levels: Silent, Major, Minor and Debug with each level more detailed than the
previous. It's up to the application to decide which output belongs with which
level. Levels are inclusive, so, e.g., if MinorLevel is set that implies MajorLevel
logging.

The Print and Printf interfaces are similar to the fmt versions with a couple of subtle
differences due to the need to prefix lines. If the resulting string contains multiple
lines they are all printed with the prefix for the logging level, and a trailing newline
is not needed - excess ones are trimmed.

Specialist logging functions external to this package should still use log.Out() to
access the current io.Writer so tests can capture their output.
*/
package log
