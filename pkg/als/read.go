package als

import (
	"fmt"

	"github.com/joshuapare/alskit/als"
)

// TrackInfo summarizes one track of a set.
type TrackInfo struct {
	Kind    string `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	ID      int    `json:"id" yaml:"id"`
	GroupID int    `json:"groupId" yaml:"groupId"`
	Sends   int    `json:"sends" yaml:"sends"`
}

// SetInfo summarizes a set.
type SetInfo struct {
	Creator       string `json:"creator" yaml:"creator"`
	PrimaryTracks int    `json:"primaryTracks" yaml:"primaryTracks"`
	ReturnTracks  int    `json:"returnTracks" yaml:"returnTracks"`
	SendColumns   int    `json:"sendColumns" yaml:"sendColumns"`
	NextPointeeID int    `json:"nextPointeeId" yaml:"nextPointeeId"`
}

// ListTracks opens the set at setPath and returns one entry per track:
// primary tracks, then return tracks, then the main track.
//
// Example:
//
//	tracks, err := als.ListTracks("project.als")
//	for _, t := range tracks {
//	    fmt.Printf("%-6s %s\n", t.Kind, t.Name)
//	}
func ListTracks(setPath string) ([]TrackInfo, error) {
	set, err := als.Open(setPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open set %s: %w", setPath, err)
	}

	var out []TrackInfo

	primaries, err := set.PrimaryTracks()
	if err != nil {
		return nil, err
	}
	for _, t := range primaries {
		info, err := mixerTrackInfo(&t.MixerTrack)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}

	returns, err := set.ReturnTracks()
	if err != nil {
		return nil, err
	}
	for _, t := range returns {
		info, err := mixerTrackInfo(&t.MixerTrack)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}

	main, err := set.MainTrack()
	if err != nil {
		return nil, err
	}
	mainName, err := main.EffectiveName()
	if err != nil {
		return nil, err
	}
	out = append(out, TrackInfo{Kind: "main", Name: mainName, ID: -1, GroupID: -1})

	return out, nil
}

func mixerTrackInfo(t *als.MixerTrack) (TrackInfo, error) {
	name, err := t.EffectiveName()
	if err != nil {
		return TrackInfo{}, err
	}
	id, err := t.ID()
	if err != nil {
		return TrackInfo{}, err
	}
	groupID, err := t.TrackGroupID()
	if err != nil {
		return TrackInfo{}, err
	}
	sends, err := trackSends(t)
	if err != nil {
		return TrackInfo{}, err
	}
	return TrackInfo{
		Kind:    trackKindName(t.Tag()),
		Name:    name,
		ID:      id,
		GroupID: groupID,
		Sends:   sends.Len(),
	}, nil
}

// Info opens the set at setPath and returns summary counters.
//
// Example:
//
//	info, err := als.Info("project.als")
//	fmt.Printf("%d+%d tracks, %d send columns\n",
//	    info.PrimaryTracks, info.ReturnTracks, info.SendColumns)
func Info(setPath string) (SetInfo, error) {
	set, err := als.Open(setPath)
	if err != nil {
		return SetInfo{}, fmt.Errorf("failed to open set %s: %w", setPath, err)
	}

	primaries, err := set.PrimaryTracks()
	if err != nil {
		return SetInfo{}, err
	}
	returns, err := set.ReturnTracks()
	if err != nil {
		return SetInfo{}, err
	}
	nextPointee, err := set.NextPointeeID()
	if err != nil {
		return SetInfo{}, err
	}

	creator, _ := set.Document().Root().Attr("Creator")

	return SetInfo{
		Creator:       creator,
		PrimaryTracks: len(primaries),
		ReturnTracks:  len(returns),
		SendColumns:   set.SendsPre().Len(),
		NextPointeeID: nextPointee,
	}, nil
}

func trackKindName(tag string) string {
	switch tag {
	case als.TagAudioTrack:
		return "audio"
	case als.TagGroupTrack:
		return "group"
	case als.TagMidiTrack:
		return "midi"
	case als.TagReturnTrack:
		return "return"
	case als.TagMainTrack:
		return "main"
	}
	return tag
}

func trackSends(t *als.MixerTrack) (*als.Sends, error) {
	chain, err := t.DeviceChain()
	if err != nil {
		return nil, err
	}
	mixer, err := chain.Mixer()
	if err != nil {
		return nil, err
	}
	return mixer.Sends()
}
