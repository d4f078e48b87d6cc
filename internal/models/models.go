package models

import (
	"time"

	"github.com/lib/pq"
)

// Verification statuses for a user account.
const (
	VerificationUnverified = "UNVERIFIED"
	VerificationPending    = "PENDING"
	VerificationVerified   = "VERIFIED"
	VerificationRejected   = "REJECTED"
)

// Lost-and-found post types and statuses.
const (
	PostTypeLost       = "LOST"
	PostTypeFound      = "FOUND"
	PostStatusActive   = "ACTIVE"
	PostStatusResolved = "RESOLVED"
)

const ItemAvailable = "AVAILABLE"

type User struct {
	UserID             string         `json:"id" db:"user_id"`
	Name               string         `json:"name" db:"name"`
	Email              string         `json:"email" db:"email"`
	PasswordHash       string         `json:"-" db:"password_hash"`
	GoogleID           *string        `json:"-" db:"google_id"`
	Photo              *string        `json:"photo" db:"photo"`
	College            string         `json:"college" db:"college"`
	EmailVerified      bool           `json:"emailVerified" db:"email_verified"`
	VerificationStatus string         `json:"verificationStatus" db:"verification_status"`
	IDPhoto            *string        `json:"-" db:"id_photo"`
	TrustScore         float64        `json:"trustScore" db:"trust_score"`
	Badges             pq.StringArray `json:"badges" db:"badges"`
	AvgRating          float64        `json:"avgRating" db:"avg_rating"`
	CompletedDeals     int            `json:"completedDeals" db:"completed_deals"`
	CancellationRate   float64        `json:"cancellationRate" db:"cancellation_rate"`
	IsOnline           bool           `json:"isOnline" db:"is_online"`
	LastSeen           time.Time      `json:"lastSeen" db:"last_seen"`
	CreatedAt          time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time      `json:"updatedAt" db:"updated_at"`
}

type Session struct {
	SessionID string    `json:"sessionId" db:"session_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// EmailVerification holds the latest OTP issued for an email address.
type EmailVerification struct {
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"-" db:"code"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Item struct {
	ItemID             string    `json:"id" db:"item_id"`
	UserID             string    `json:"userId" db:"user_id"`
	Name               string    `json:"name" db:"name"`
	Category           string    `json:"category" db:"category"`
	Description        *string   `json:"description" db:"description"`
	Price              float64   `json:"price" db:"price"`
	Condition          string    `json:"condition" db:"condition"`
	Photo              *string   `json:"photo" db:"photo"`
	AvailabilityStatus string    `json:"availabilityStatus" db:"availability_status"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

type LostFoundPost struct {
	PostID      string         `json:"id" db:"post_id"`
	UserID      string         `json:"userId" db:"user_id"`
	Type        string         `json:"type" db:"type"`
	Title       string         `json:"title" db:"title"`
	Category    string         `json:"category" db:"category"`
	Description *string        `json:"description" db:"description"`
	Photo       *string        `json:"photo" db:"photo"`
	Photos      pq.StringArray `json:"photos" db:"photos"`
	Location    *string        `json:"location" db:"location"`
	Date        *time.Time     `json:"date" db:"date"`
	ContactInfo *string        `json:"contactInfo" db:"contact_info"`
	Status      string         `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`

	// Poster summary joined in list/detail queries, not a column of the posts table.
	User *PublicUser `json:"user,omitempty" db:"-"`
}

// PublicUser is the subset of User safe to embed in another user's view.
type PublicUser struct {
	UserID             string  `json:"id" db:"user_id"`
	Name               string  `json:"name" db:"name"`
	Photo              *string `json:"photo" db:"photo"`
	College            string  `json:"college" db:"college"`
	VerificationStatus string  `json:"verificationStatus" db:"verification_status"`
}

type Rating struct {
	RatingID   string      `json:"id" db:"rating_id"`
	FromUserID string      `json:"-" db:"from_user_id"`
	ToUserID   string      `json:"-" db:"to_user_id"`
	Stars      int         `json:"stars" db:"stars"`
	Comment    *string     `json:"comment" db:"comment"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	FromUser   *PublicUser `json:"fromUser,omitempty" db:"-"`
}
