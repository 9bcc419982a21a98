package als

import (
	"github.com/joshuapare/alskit/als"
	"github.com/joshuapare/alskit/pkg/types"
)

// Re-export the core document types so users only need to import pkg/als.

// Document and set types.
type (
	Document = als.Document
	LiveSet  = als.LiveSet
)

// Track types.
type (
	Track        = als.Track
	MixerTrack   = als.MixerTrack
	PrimaryTrack = als.PrimaryTrack
	ReturnTrack  = als.ReturnTrack
	MainTrack    = als.MainTrack
)

// Mixer and routing types.
type (
	DeviceChain         = als.DeviceChain
	Mixer               = als.Mixer
	Routing             = als.Routing
	Sends               = als.Sends
	Send                = als.Send
	TrackSendHolder     = als.TrackSendHolder
	SendsPre            = als.SendsPre
	SendPreBool         = als.SendPreBool
	MidiControllerRange = als.MidiControllerRange
)

// InsertTracksRequest describes a batch insertion; see the core package.
type InsertTracksRequest = als.InsertTracksRequest

// Loading functions.
var (
	Open      = als.Open
	Load      = als.Load
	LoadBytes = als.LoadBytes
)

// Error types.
type (
	Error   = types.Error
	ErrKind = types.ErrKind
)

// Error kind constants.
const (
	ErrKindFormat      = types.ErrKindFormat
	ErrKindSchema      = types.ErrKindSchema
	ErrKindRange       = types.ErrKindRange
	ErrKindReference   = types.ErrKindReference
	ErrKindInvariant   = types.ErrKindInvariant
	ErrKindUnsupported = types.ErrKindUnsupported
	ErrKindInternal    = types.ErrKindInternal
)

// Error helpers.
var (
	IsKind = types.IsKind
	KindOf = types.KindOf
)

// Common error sentinels.
var (
	ErrNotAbleton = types.ErrNotAbleton
)
