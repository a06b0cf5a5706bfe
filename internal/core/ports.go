package core

import "context"

// NewsRepository defines data access for news articles.
// An empty status lists every article.
type NewsRepository interface {
	List(status ArticleStatus) ([]*NewsArticle, error)
	GetByID(id string) (*NewsArticle, error)
	Create(article *NewsArticle) error
	Update(article *NewsArticle) error
	Delete(id string) error
}

// MatchRepository defines data access for fixtures and results.
// An empty status lists every match.
type MatchRepository interface {
	List(status MatchStatus) ([]*Match, error)
	GetByID(id string) (*Match, error)
	Create(match *Match) error
	Update(match *Match) error
	Delete(id string) error
}

type HighlightRepository interface {
	List() ([]*Highlight, error)
	ListByMatch(matchID string) ([]*Highlight, error)
	Create(h *Highlight) error
	Delete(id string) error
}

// PlayerRepository defines data access for players. An empty squad lists everyone.
type PlayerRepository interface {
	List(squad string) ([]*Player, error)
	GetByID(id string) (*Player, error)
	Create(player *Player) error
	Update(player *Player) error
	Delete(id string) error
}

type StandingsRepository interface {
	List() ([]*StandingsRow, error)
	GetByID(id string) (*StandingsRow, error)
	Create(row *StandingsRow) error
	Update(row *StandingsRow) error
	Delete(id string) error
}

type ProductRepository interface {
	List() ([]*Product, error)
	GetByID(id string) (*Product, error)
	Create(product *Product) error
	Update(product *Product) error
	Delete(id string) error
}

type OrderRepository interface {
	List() ([]*Order, error)
	ListByUser(userID string) ([]*Order, error)
	GetByID(id string) (*Order, error)
	Create(order *Order) error
	UpdateStatus(id string, status OrderStatus) error
}

type EventRepository interface {
	List() ([]*Event, error)
	GetByID(id string) (*Event, error)
	Create(event *Event) error
	Update(event *Event) error
	Delete(id string) error
}

// PollRepository defines data access for polls and their vote receipts
type PollRepository interface {
	List() ([]*Poll, error)
	ListOpen() ([]*Poll, error)
	GetByID(id string) (*Poll, error)
	Create(poll *Poll) error
	SetOpen(id string, open bool) error
	// Delete removes the poll together with its receipts
	Delete(id string) error

	HasVoted(pollID, userID string) (bool, error)
	// CastVote re-reads the poll, bumps the chosen option and stores the
	// receipt as one atomic unit. It returns the poll as committed.
	CastVote(pollID, userID string, optionIndex int) (*Poll, error)
}

// UserRepository manages profile data stored on the users auth collection
type UserRepository interface {
	List() ([]*UserProfile, error)
	GetByID(id string) (*UserProfile, error)
	Update(user *UserProfile) error
	Delete(id string) error

	AdminDeviceTokens() ([]string, error)
	SetDeviceToken(userID, token string) error
	ClearDeviceToken(token string) error
}

// AccountStore wraps the backing auth service
type AccountStore interface {
	Register(req *SignUpRequest) (*UserProfile, string, error)
	Authenticate(email, password string) (*UserProfile, string, error)
	// ResolveToken returns the profile behind an auth token and whether the
	// token belongs to a store superuser.
	ResolveToken(token string) (*UserProfile, bool, error)
}

type SettingsRepository interface {
	Payment() (*PaymentSettings, error)
	SavePayment(settings *PaymentSettings) error
}

// StatsRepository serves the aggregate numbers of the admin dashboard
type StatsRepository interface {
	// Count counts records of a collection matching an optional filter
	Count(collection, filter string, params map[string]any) (int64, error)
	// OrderRevenue sums the price snapshot of every order
	OrderRevenue() (float64, error)
	// DailyOrders returns order counts per day (YYYY-MM-DD) since the given day
	DailyOrders(since string) ([]DailyCount, error)
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Notifier delivers push notifications to admin devices and topics
type Notifier interface {
	// NotifyNewOrder returns the tokens that turned out to be invalid
	NotifyNewOrder(ctx context.Context, tokens []string, order *Order) ([]string, error)
	NotifyTopic(ctx context.Context, topic, title, body string, data map[string]string) error
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) error
}

// ArticleDrafter produces a news article draft from match details
type ArticleDrafter interface {
	DraftArticle(ctx context.Context, req DraftRequest) (*ArticleDraft, error)
}

// DTOs for the service layer

type SignUpRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

type DraftRequest struct {
	Opponent   string `json:"opponent"`
	Score      string `json:"score"`
	Highlights string `json:"highlights"`
}

type ArticleDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreatePollRequest struct {
	Question  string   `json:"question"`
	MatchID   string   `json:"match_id"`
	PlayerIDs []string `json:"player_ids"`
}

type PlaceOrderRequest struct {
	ProductID       string `json:"product_id"`
	ShippingAddress string `json:"shipping_address"`
}
