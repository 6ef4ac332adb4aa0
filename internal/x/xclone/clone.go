package xclone

import (
	"github.com/dogmatiq/dyad"
	"google.golang.org/protobuf/proto"
)

// Clone returns a deep copy of v.
//
// Snapshots must not share mutable memory with the values they were built
// from, so every reference-typed field is copied transitively, including
// unexported fields, so that any value type may be stored. Channels are
// shared rather than cloned; a channel is a communication endpoint, not
// state, and there is no meaningful way to copy one. Protocol buffers
// messages are cloned via the protobuf runtime, which understands their
// internal state.
func Clone[T any](v T) T {
	if v, ok := any(v).(proto.Message); ok {
		return proto.Clone(v).(T)
	}
	return dyad.Clone(
		v,
		dyad.WithUnexportedFieldStrategy(dyad.CloneUnexportedFields),
		dyad.WithChannelStrategy(dyad.ShareChannels),
	)
}
