package domain

import (
	"sort"
	"strings"
	"time"
)

// Collection owns the sessions, most recent first, and the tag index derived
// from them. The index is maintained incrementally on every mutation.
type Collection struct {
	Sessions       []Session      `json:"sessions"`
	TagFrequencies []TagFrequency `json:"tag_frequencies"`
	IsExampleData  bool           `json:"is_example_data"`
}

// Add prepends s and counts its tag.
func (c *Collection) Add(s Session) {
	if s.TaggedAt.IsZero() {
		s.TaggedAt = s.CreatedAt
	}
	c.Sessions = append([]Session{s}, c.Sessions...)
	c.increment(s.Tag, s.TaggedAt)
}

// Find returns the session with id.
func (c *Collection) Find(id string) (Session, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.Sessions[idx], true
	}
	return Session{}, false
}

// Update retags a session. Unknown ids are ignored and report false.
func (c *Collection) Update(id, tag string, now time.Time) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	old := c.Sessions[idx].Tag
	if tag == "" || tag == old {
		return true
	}
	c.Sessions[idx].Tag = tag
	c.Sessions[idx].TaggedAt = now
	c.decrement(old)
	c.increment(tag, now)
	return true
}

// Delete removes a session. Unknown ids are ignored and report false.
func (c *Collection) Delete(id string) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	tag := c.Sessions[idx].Tag
	c.Sessions = append(c.Sessions[:idx:idx], c.Sessions[idx+1:]...)
	c.decrement(tag)
	return true
}

func (c *Collection) Clear() {
	c.Sessions = nil
	c.TagFrequencies = nil
	c.IsExampleData = false
}

// Suggestions returns up to MaxSuggestions tags starting with prefix, most
// used first and most recently used among equals.
func (c *Collection) Suggestions(prefix string) []TagFrequency {
	prefix = strings.ToLower(prefix)
	matches := make([]TagFrequency, 0, len(c.TagFrequencies))
	for _, tf := range c.TagFrequencies {
		if strings.HasPrefix(tf.Tag, prefix) {
			matches = append(matches, tf)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].LastUsedAt.After(matches[j].LastUsedAt)
	})
	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	return matches
}

func (c *Collection) Frequency(tag string) (TagFrequency, bool) {
	for _, tf := range c.TagFrequencies {
		if tf.Tag == tag {
			return tf, true
		}
	}
	return TagFrequency{}, false
}

// RebuildTagFrequencies derives the tag index from scratch, sorted by tag.
func RebuildTagFrequencies(sessions []Session) []TagFrequency {
	byTag := map[string]*TagFrequency{}
	for _, s := range sessions {
		tf, ok := byTag[s.Tag]
		if !ok {
			tf = &TagFrequency{Tag: s.Tag}
			byTag[s.Tag] = tf
		}
		tf.Count++
		if s.TaggedAt.After(tf.LastUsedAt) {
			tf.LastUsedAt = s.TaggedAt
		}
	}
	out := make([]TagFrequency, 0, len(byTag))
	for _, tf := range byTag {
		out = append(out, *tf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

func (c *Collection) indexOf(id string) int {
	for i := range c.Sessions {
		if c.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) increment(tag string, at time.Time) {
	for i := range c.TagFrequencies {
		if c.TagFrequencies[i].Tag == tag {
			c.TagFrequencies[i].Count++
			if at.After(c.TagFrequencies[i].LastUsedAt) {
				c.TagFrequencies[i].LastUsedAt = at
			}
			return
		}
	}
	c.TagFrequencies = append(c.TagFrequencies, TagFrequency{Tag: tag, Count: 1, LastUsedAt: at})
}

// decrement must run after the session list reflects the change so
// LastUsedAt can be recomputed from the sessions still bearing tag.
func (c *Collection) decrement(tag string) {
	for i := range c.TagFrequencies {
		if c.TagFrequencies[i].Tag != tag {
			continue
		}
		c.TagFrequencies[i].Count--
		if c.TagFrequencies[i].Count <= 0 {
			c.TagFrequencies = append(c.TagFrequencies[:i:i], c.TagFrequencies[i+1:]...)
			return
		}
		var latest time.Time
		for _, s := range c.Sessions {
			if s.Tag == tag && s.TaggedAt.After(latest) {
				latest = s.TaggedAt
			}
		}
		c.TagFrequencies[i].LastUsedAt = latest
		return
	}
}
