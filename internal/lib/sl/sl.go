// Package sl holds small helpers for log/slog attributes.
package sl

import "log/slog"

// Err wraps an error into a standard log attribute.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module tags log records with the emitting component name.
func Module(name string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(name),
	}
}

// Secret logs only whether a sensitive value is present.
func Secret(key, value string) slog.Attr {
	masked := "unset"
	if value != "" {
		masked = "set"
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
