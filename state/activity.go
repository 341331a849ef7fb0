package state

import (
	"sort"
	"wardenbot/model"
)

type UserScore struct {
	UserID int64
	Score  int64
}

func (m *Manager) Score(chatID, userID int64) int64 {
	var score int64
	m.ReadChat(chatID, func(chat *model.ChatState) {
		score = chat.Activity.UnityScores[userID]
	})
	return score
}

// TopN ranks by score descending; ties go to whoever was seen first.
func (m *Manager) TopN(chatID int64, n int) []UserScore {
	var top []UserScore
	firstSeen := make(map[int64]int64)
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for id, score := range chat.Activity.UnityScores {
			top = append(top, UserScore{UserID: id, Score: score})
			firstSeen[id] = chat.Activity.FirstSeen[id]
		}
	})
	sort.Slice(top, func(i, j int) bool {
		if top[i].Score != top[j].Score {
			return top[i].Score > top[j].Score
		}
		return firstSeen[top[i].UserID] < firstSeen[top[j].UserID]
	})
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// ActivityTotals reports the score sum and the number of scored users.
func (m *Manager) ActivityTotals(chatID int64) (total int64, users int) {
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for _, score := range chat.Activity.UnityScores {
			total += score
		}
		users = len(chat.Activity.UnityScores)
	})
	return total, users
}
