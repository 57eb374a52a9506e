// Package editor implements the ordered selection editor used by the template
// builder to pick batch header fields.
//
// The editor owns a single authoritative selected sequence. Renderers read
// Snapshot copies; every change goes through Toggle, MoveUp or MoveDown.
package editor
