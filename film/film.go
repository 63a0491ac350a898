package film

import (
	"encoding/json"
	"fmt"
	"time"
)

// Film is one row of the dvdrental film table. FilmID is always present,
// every other column may be NULL.
type Film struct {
	FilmID          int64      `json:"film_id"`
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Rating          *string    `json:"rating"`
	ReleaseYear     *int64     `json:"release_year"`
	Length          *int64     `json:"length"`
	LanguageID      *int64     `json:"language_id"`
	RentalDuration  *int64     `json:"rental_duration"`
	RentalRate      *int64     `json:"rental_rate"`
	ReplacementCost *int64     `json:"replacement_cost"`
	LastUpdate      *time.Time `json:"last_update"`
	SpecialFeatures *string    `json:"special_features"`
	Fulltext        *string    `json:"fulltext"`
}

// Credentials is the json payload of an rds database secret.
type Credentials struct {
	Host                string `json:"host"`
	Username            string `json:"username"`
	Password            string `json:"password"`
	Engine              string `json:"engine,omitempty"`
	Port                int    `json:"port,omitempty"`
	DBName              string `json:"dbname,omitempty"`
	DBClusterIdentifier string `json:"dbClusterIdentifier,omitempty"`
}

func ParseCredentials(payload string) (*Credentials, error) {
	creds := &Credentials{}
	err := json.Unmarshal([]byte(payload), creds)
	if err != nil {
		return nil, err
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("secret has no username")
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("secret has no password")
	}
	return creds, nil
}

func (c *Credentials) String() string {
	return fmt.Sprintf("%s:%s@%s", c.Username, mask(c.Password), c.Host)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
