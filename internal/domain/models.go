package domain

import "time"

// Friendship lifecycle states. Declined and removed friendships are deleted
// outright rather than kept as a status.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// User is a registered account. PasswordHash holds a bcrypt digest and is
// never included in anything returned to callers.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Identity is the caller-facing slice of a User, as carried by the session
// token.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Question belongs to exactly one quiz; it has no independent lifecycle.
// IDs are drawn from a global counter but only meaningful within their quiz.
type Question struct {
	ID            int64  `json:"id"`
	Text          string `json:"text"`
	CorrectAnswer bool   `json:"correctAnswer"`
}

// QuestionDraft is the caller-supplied form of a question, before an ID has
// been assigned.
type QuestionDraft struct {
	Text          string `json:"text"`
	CorrectAnswer bool   `json:"correctAnswer"`
}

// Quiz is an ordered collection of questions owned by one user. Editing a
// quiz replaces its content wholesale and reassigns every question ID.
type Quiz struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"isPublic"`
	OwnerID     int64      `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	Questions   []Question `json:"questions"`
}

// PlayQuestion is a question with the answer withheld.
type PlayQuestion struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// PlayView is what a player sees before answering: the quiz title and its
// questions in order, with no answer key.
type PlayView struct {
	QuizID    int64          `json:"quizId"`
	Title     string         `json:"title"`
	Questions []PlayQuestion `json:"questions"`
}

// Friendship links two users. The requester/addressee usernames and emails
// are cached on the record so list views need no extra user lookups.
type Friendship struct {
	ID             int64      `json:"id"`
	RequesterID    int64      `json:"requesterId"`
	RequesterName  string     `json:"requesterName"`
	RequesterEmail string     `json:"requesterEmail"`
	AddresseeID    int64      `json:"addresseeId"`
	AddresseeName  string     `json:"addresseeName"`
	AddresseeEmail string     `json:"addresseeEmail"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
}

// Other returns the party opposite to userID on the friendship.
func (f Friendship) Other(userID int64) (id int64, name, email string) {
	if f.RequesterID == userID {
		return f.AddresseeID, f.AddresseeName, f.AddresseeEmail
	}
	return f.RequesterID, f.RequesterName, f.RequesterEmail
}

// Touches reports whether userID is either party of the friendship.
func (f Friendship) Touches(userID int64) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// FriendSummary is the accepted-friendship view returned to callers.
type FriendSummary struct {
	FriendshipID int64     `json:"friendshipId"`
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Since        time.Time `json:"since"`
}

// QuizResult records one completed play of a quiz. Results are append-only;
// every play produces a new row.
type QuizResult struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	QuizID         int64     `json:"quizId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completedAt"`
}

// ResultRow is a quiz result joined with the player's display name, as shown
// on leaderboards.
type ResultRow struct {
	ResultID       int64     `json:"resultId"`
	UserID         int64     `json:"userId"`
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completedAt"`
}

// QuizGroups partitions the quiz collection for one viewer. The three slices
// are disjoint: every quiz lands in exactly one of them, or in none when it
// is private and owned by a stranger.
type QuizGroups struct {
	Mine    []Quiz `json:"mine"`
	Friends []Quiz `json:"friends"`
	Others  []Quiz `json:"others"`
}

// QuizStanding is one quiz with its ranked top results. A quiz nobody has
// played yet still appears, with an empty Results slice.
type QuizStanding struct {
	QuizID   int64       `json:"quizId"`
	Title    string      `json:"title"`
	OwnerID  int64       `json:"ownerId"`
	IsPublic bool        `json:"isPublic"`
	Results  []ResultRow `json:"results"`
}

// Leaderboard mirrors QuizGroups with standings attached per quiz.
type Leaderboard struct {
	Mine    []QuizStanding `json:"mine"`
	Friends []QuizStanding `json:"friends"`
	Others  []QuizStanding `json:"others"`
}
