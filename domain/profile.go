package domain

import "time"

// Profile is the single local user profile. Exactly one exists per data
// directory; it is created with defaults on first load and mutated in
// place thereafter.
type Profile struct {
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic"`
	LikedMemes []string  `json:"likedMemes"`
	JoinDate   time.Time `json:"joinDate"`
	Followers  int       `json:"followers"`
	Following  int       `json:"following"`
}

// HasLiked reports whether the meme ID is in the liked set.
func (p Profile) HasLiked(memeID string) bool {
	for _, id := range p.LikedMemes {
		if id == memeID {
			return true
		}
	}
	return false
}

// ProfileUpdate is a partial profile edit. Nil fields are left untouched;
// set fields are merged in as-is, with no validation.
type ProfileUpdate struct {
	Name       *string
	Username   *string
	Bio        *string
	ProfilePic *string
	Followers  *int
	Following  *int
}
