package core

import "time"

// Collection names as stored in PocketBase
const (
	CollectionNews       = "news"
	CollectionMatches    = "matches"
	CollectionHighlights = "highlights"
	CollectionPlayers    = "players"
	CollectionStandings  = "standings"
	CollectionProducts   = "products"
	CollectionOrders     = "orders"
	CollectionEvents     = "events"
	CollectionPolls      = "polls"
	CollectionVotes      = "votes"
	CollectionUsers      = "users"
	CollectionSettings   = "settings"
)

// PaymentSettingsKey identifies the singleton payment row in settings
const PaymentSettingsKey = "payment"

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "Draft"
	ArticleStatusPublished ArticleStatus = "Published"
)

// NewsArticle is a club news post. Content is trusted HTML.
type NewsArticle struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Author   string        `json:"author"`
	Date     time.Time     `json:"date"`
	Status   ArticleStatus `json:"status"`
	ImageURL string        `json:"image_url"`
	Tags     []string      `json:"tags"`
}

type MatchStatus string

const (
	MatchUpcoming MatchStatus = "Upcoming"
	MatchLive     MatchStatus = "Live"
	MatchPast     MatchStatus = "Past"
)

type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

// Match is a fixture or result. Status decides which schedule tab it lands in.
type Match struct {
	ID          string      `json:"id"`
	Opponent    string      `json:"opponent"`
	Date        time.Time   `json:"date"`
	Time        string      `json:"time"`
	Competition string      `json:"competition"`
	Venue       Venue       `json:"venue"`
	Status      MatchStatus `json:"status"`
	Score       string      `json:"score"`
	Result      string      `json:"result"` // W, D or L
	YouTubeLink string      `json:"youtube_link"`

	// Display helper, filled by the schedule service
	EmbedURL string `json:"embed_url,omitempty"`
}

// Highlight is a video clip attached to a played match
type Highlight struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"match_id"`
	Title       string    `json:"title"`
	YouTubeLink string    `json:"youtube_link"`
	Date        time.Time `json:"date"`
	EmbedURL    string    `json:"embed_url,omitempty"`
}

// Squad names used by the roster page
const (
	SquadMen   = "Men's First Team"
	SquadWomen = "Women's First Team"
)

// PlayerStats maps a category (pace, shooting, ...) to its leaf attributes.
type PlayerStats map[string]map[string]float64

// StatCategories lists the categories in display order
var StatCategories = []string{"pace", "shooting", "passing", "dribbling", "defense", "physicality"}

type Player struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Number      int      `json:"number"`
	Position    string   `json:"position"`
	Squad       string   `json:"squad"`
	Nationality string   `json:"nationality"`
	BirthDate   string   `json:"birth_date"`
	Height      string   `json:"height"`
	ImageURL    string   `json:"image_url"`
	Bio         string   `json:"bio"`
	Status      string   `json:"status"` // Available, Injured, Suspended...
	Year        string   `json:"year"`
	Traits      []string `json:"traits"`

	// Season numbers
	Apps        int `json:"apps"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`

	Potential  int         `json:"potential"`
	SkillMoves int         `json:"skill_moves"`
	WeakFoot   int         `json:"weak_foot"`
	Stats      PlayerStats `json:"stats"`
}

// Overall is recomputed from the current stats on every call.
func (p *Player) Overall() int {
	return OverallRating(p.Stats)
}

// StandingsRow is one team line in the admin-maintained league table
type StandingsRow struct {
	ID             string   `json:"id"`
	Position       int      `json:"position"`
	Name           string   `json:"name"`
	Played         int      `json:"played"`
	Won            int      `json:"won"`
	Drawn          int      `json:"drawn"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goals_for"`
	GoalsAgainst   int      `json:"goals_against"`
	GoalDifference int      `json:"goal_difference"`
	Points         int      `json:"points"`
	Form           []string `json:"form"`
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

// OrderStatuses is the full set an admin may pick from. Any transition is allowed.
var OrderStatuses = []OrderStatus{OrderPending, OrderShipped, OrderDelivered}

// Valid reports whether s belongs to OrderStatuses
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order records purchase intent. Payment happens out of band.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	UserName        string      `json:"user_name"`
	ProductID       string      `json:"product_id"`
	ProductName     string      `json:"product_name"`
	Price           float64     `json:"price"`
	ShippingAddress string      `json:"shipping_address"`
	Status          OrderStatus `json:"status"`
	OrderDate       time.Time   `json:"order_date"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	TicketsSold int       `json:"tickets_sold"`
}

type PollOption struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Votes    int    `json:"votes"`
}

type Poll struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	MatchID   string       `json:"match_id"`
	Opponent  string       `json:"opponent"`
	MatchDate time.Time    `json:"match_date"`
	Options   []PollOption `json:"options"`
	IsOpen    bool         `json:"is_open"`
	Created   string       `json:"created"`
}

// TotalVotes sums the option counters
func (p *Poll) TotalVotes() int {
	return TotalVotes(p.Options)
}

// VoteReceipt proves a user voted on a poll. At most one exists per (poll, user).
type VoteReceipt struct {
	ID          string `json:"id"`
	PollID      string `json:"poll_id"`
	UserID      string `json:"user_id"`
	OptionIndex int    `json:"option_index"`
}

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type UserProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	AvatarURL  string `json:"avatar_url"`
	Department string `json:"department"`
}

func (u *UserProfile) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName falls back to the email when no name was given
func (u *UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// PaymentSettings holds the manual bank transfer instructions shown in the store
type PaymentSettings struct {
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	AccountName    string `json:"account_name"`
	WhatsAppNumber string `json:"whatsapp_number"`
}
