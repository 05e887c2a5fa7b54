package domain

import "time"

// WinnerDraw is the sentinel stored in Duel.Winner when both participants
// score equally. User ids never contain '#', so it cannot collide.
const WinnerDraw = "#draw"

// ChoiceCount is the number of answer options per card.
const ChoiceCount = 3

// Card is a single question tuple inside a frozen box snapshot.
type Card struct {
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// BoxSnapshot is an immutable copy of a card box taken at challenge-issue
// time. Later edits to the live box must not be observable through it.
type BoxSnapshot struct {
	BoxID string `json:"box_id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Duel is a challenge between two users over a frozen box snapshot.
// It starts as a pending invitation (Accepted=false) and becomes an active
// session on acceptance. Winner stays empty until both sides finish.
type Duel struct {
	ID         string     `json:"id"`
	Challenger string     `json:"challenger"`
	Challenged string     `json:"challenged"`
	BoxID      string     `json:"box_id"`
	BoxName    string     `json:"box_name"`
	Cards      []Card     `json:"cards"`
	Accepted   bool       `json:"accepted"`
	Winner     string     `json:"winner"`
	FinishTime *time.Time `json:"finish_time,omitempty"`
}

// Finished reports whether the duel outcome has been recorded.
func (d Duel) Finished() bool {
	return d.Winner != ""
}

// HasParticipant reports whether userID is one of the two players.
func (d Duel) HasParticipant(userID string) bool {
	return userID == d.Challenger || userID == d.Challenged
}

// Opponent returns the other participant.
func (d Duel) Opponent(userID string) (string, error) {
	switch userID {
	case d.Challenger:
		return d.Challenged, nil
	case d.Challenged:
		return d.Challenger, nil
	}
	return "", ErrNotAuthorized
}

// QuestionCount is the length of the frozen snapshot.
func (d Duel) QuestionCount() int {
	return len(d.Cards)
}

// CardAt returns the card at index.
func (d Duel) CardAt(index int) (Card, error) {
	if index < 0 || index >= len(d.Cards) {
		return Card{}, ErrIndexOutOfRange
	}
	return d.Cards[index], nil
}

// Progress is a read-only view of one participant's state in a running duel.
type Progress struct {
	DuelID       string `json:"duelId"`
	Position     int    `json:"position"` // answers recorded so far
	LastChoice   int    `json:"lastChoice"`
	LastLetter   string `json:"lastLetter"` // "a", "b" or "c"; empty before the first answer
	CorrectCount int    `json:"correctCount"`
	Waiting      bool   `json:"waiting"` // done, opponent still playing
	Finished     bool   `json:"finished"`
}

// Result is the outcome view of a finished duel.
type Result struct {
	DuelID            string    `json:"duelId"`
	Challenger        string    `json:"challenger"`
	Challenged        string    `json:"challenged"`
	BoxName           string    `json:"boxName"`
	Winner            string    `json:"winner"`
	FinishTime        time.Time `json:"finishTime"`
	ChallengerAnswers []int     `json:"challengerAnswers"`
	ChallengedAnswers []int     `json:"challengedAnswers"`
	ChallengerCorrect []bool    `json:"challengerCorrect"`
	ChallengedCorrect []bool    `json:"challengedCorrect"`
	ChallengerScore   int       `json:"challengerScore"`
	ChallengedScore   int       `json:"challengedScore"`
}

// ScoreEntry is one row of the global leaderboard.
type ScoreEntry struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
}
