package out

import (
	"context"

	sessionin "firstthought/internal/modules/session/port/in"
	"firstthought/internal/modules/stats/domain"
	statsout "firstthought/internal/modules/stats/port/out"
)

type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) statsout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) Sessions(ctx context.Context) ([]domain.Session, error) {
	list, err := a.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(list.Sessions))
	for _, s := range list.Sessions {
		out = append(out, domain.Session{
			ID:         s.ID,
			Tag:        s.Tag,
			DurationMs: s.DurationMs,
			StartedAt:  s.StartedAt,
			CreatedAt:  s.CreatedAt,
		})
	}
	return out, nil
}

func (a *SessionSourceAdapter) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	list, err := a.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TagCount, 0, len(list.TagFrequencies))
	for _, tf := range list.TagFrequencies {
		out = append(out, domain.TagCount{Tag: tf.Tag, Count: tf.Count})
	}
	return out, nil
}
