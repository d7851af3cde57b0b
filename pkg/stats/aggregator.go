package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/entity"
)

// The aggregation engine: stateless functions computing derived statistics
// from full in-memory collections. Every function is a pure transform whose
// result does not depend on the ordering of its input slices.

const isoDate = "2006-01-02"

// CountWords counts whitespace-separated word runs. Blank text counts zero.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TextStats computes message/word/tip/author totals over all messages.
func TextStats(messages []*entity.Message) dto.TextAnalysis {
	totalWords := 0
	tipCounts := make(map[string]int)
	authors := make(map[string]struct{})

	for _, msg := range messages {
		totalWords += CountWords(msg.Text)

		tip := msg.Tip
		if tip == "" {
			tip = "Sin propina"
		}
		tipCounts[tip]++

		authors[msg.Author] = struct{}{}
	}

	avgWords := 0
	if len(messages) > 0 {
		avgWords = int(math.Round(float64(totalWords) / float64(len(messages))))
	}

	return dto.TextAnalysis{
		TotalMessages:      len(messages),
		TotalWords:         totalWords,
		AvgWordsPerMessage: avgWords,
		TipCounts:          tipCounts,
		UniqueAuthors:      len(authors),
	}
}

// SessionBreakdown counts messages per session, sorted by count descending.
// Sessions with equal counts keep their input order.
func SessionBreakdown(sessions []*entity.Session, messages []*entity.Message) []dto.SessionBreakdownItem {
	counts := make(map[string]int, len(sessions))
	for _, msg := range messages {
		counts[msg.SessionId]++
	}

	items := make([]dto.SessionBreakdownItem, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, dto.SessionBreakdownItem{
			SessionId:    s.Id,
			SessionName:  s.Name,
			MessageCount: counts[s.Id],
			Active:       s.Active,
			CreatedAt:    s.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].MessageCount > items[j].MessageCount
	})
	return items
}

// TopAuthors groups messages by author and returns the most prolific ones,
// at most limit entries. Ties are broken by first-seen order.
func TopAuthors(messages []*entity.Message, limit int) []dto.AuthorCount {
	counts := make(map[string]int)
	var seen []string
	for _, msg := range messages {
		author := msg.Author
		if author == "" {
			author = "Anónimo"
		}
		if _, ok := counts[author]; !ok {
			seen = append(seen, author)
		}
		counts[author]++
	}

	result := make([]dto.AuthorCount, 0, len(seen))
	for _, author := range seen {
		result = append(result, dto.AuthorCount{Author: author, Count: counts[author]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// DailyActivity counts messages per UTC calendar day over the last
// windowDays days, today included, keyed by ISO date.
func DailyActivity(messages []*entity.Message, windowDays int) map[string]int {
	return DailyActivityAt(messages, windowDays, time.Now().UTC())
}

func DailyActivityAt(messages []*entity.Message, windowDays int, now time.Time) map[string]int {
	activity := make(map[string]int, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		key := now.AddDate(0, 0, -i).UTC().Format(isoDate)
		activity[key] = 0
	}

	for _, msg := range messages {
		key := msg.CreatedAt.UTC().Format(isoDate)
		if _, inWindow := activity[key]; inWindow {
			activity[key]++
		}
	}
	return activity
}

// Overview composes the headline counters for the admin dashboard.
func Overview(sessions []*entity.Session, messages []*entity.Message) dto.StatsOverview {
	return OverviewAt(sessions, messages, time.Now().UTC())
}

func OverviewAt(sessions []*entity.Session, messages []*entity.Message, now time.Time) dto.StatsOverview {
	activeSessions := 0
	for _, s := range sessions {
		if s.Active {
			activeSessions++
		}
	}

	recentCutoff := now.AddDate(0, 0, -7)
	recentMessages := 0
	var firstMessage time.Time
	for _, msg := range messages {
		if msg.CreatedAt.After(recentCutoff) {
			recentMessages++
		}
		if firstMessage.IsZero() || msg.CreatedAt.Before(firstMessage) {
			firstMessage = msg.CreatedAt
		}
	}

	avgPerSession := 0
	if activeSessions > 0 {
		avgPerSession = int(math.Round(float64(len(messages)) / float64(activeSessions)))
	}

	daysSinceFirst := 0
	messagesPerDay := 0.0
	if len(messages) > 0 {
		daysSinceFirst = int(math.Ceil(now.Sub(firstMessage).Hours() / 24))
		if daysSinceFirst > 0 {
			// One decimal, matching the original dashboard format.
			messagesPerDay = math.Round(float64(len(messages))/float64(daysSinceFirst)*10) / 10
		}
	}

	return dto.StatsOverview{
		TotalSessions:         len(sessions),
		ActiveSessions:        activeSessions,
		TotalMessages:         len(messages),
		RecentMessages:        recentMessages,
		AvgMessagesPerSession: avgPerSession,
		MessagesPerDay:        messagesPerDay,
		DaysSinceFirstMessage: daysSinceFirst,
	}
}

// Timeline reports the first/last message timestamps and the busiest day of
// the given daily activity window.
func Timeline(messages []*entity.Message, daily map[string]int) dto.StatsTimeline {
	var first, last *time.Time
	for _, msg := range messages {
		t := msg.CreatedAt
		if first == nil || t.Before(*first) {
			created := t
			first = &created
		}
		if last == nil || t.After(*last) {
			created := t
			last = &created
		}
	}

	most := dto.MostActiveDay{}
	keys := make([]string, 0, len(daily))
	for key := range daily {
		keys = append(keys, key)
	}
	// Map iteration order is random; walk the dates sorted so equal counts
	// resolve to the earliest day deterministically.
	sort.Strings(keys)
	for _, key := range keys {
		if daily[key] > most.Count {
			most = dto.MostActiveDay{Date: key, Count: daily[key]}
		}
	}

	return dto.StatsTimeline{
		FirstMessage:  first,
		LastMessage:   last,
		MostActiveDay: most,
	}
}
