package app

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/errmsg"
	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/session"
	"github.com/llehouerou/tideplay/internal/state"
)

// RestoreState returns the saved resume state for src, or the default when
// nothing was saved for this exact source.
func RestoreState(store state.Interface, src media.Source, log zerolog.Logger) session.State {
	rec, err := store.GetSession(src.Key())
	if err != nil {
		log.Warn().Err(err).Msg(string(errmsg.OpRestore))
		return session.DefaultState()
	}
	if rec == nil {
		return session.DefaultState()
	}
	st := rec.State
	if st.WindowIndex < 0 || st.WindowIndex >= src.Len() {
		st.WindowIndex = 0
		st.Position = 0
	}
	log.Info().
		Int("window", st.WindowIndex).
		Dur("position", st.Position).
		Msg("restored session")
	return st
}

// PersistRelease returns a binder hook that saves every released state.
func PersistRelease(store state.Interface) func(media.Source, session.State) {
	return func(src media.Source, st session.State) {
		label := ""
		if item, ok := src.Item(st.WindowIndex); ok {
			label = item.Name()
		}
		store.SaveSession(state.SessionRecord{
			SourceKey: src.Key(),
			Label:     label,
			State:     st,
		})
	}
}
