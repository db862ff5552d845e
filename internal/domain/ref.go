package domain

import (
	"bytes"
	"encoding/json"
)

// UserRef is a user reference that the API sends either as a bare id or as
// an embedded user document.
type UserRef struct {
	ID   string
	User *User
}

// RefUser references a user by id only.
func RefUser(id string) UserRef {
	return UserRef{ID: id}
}

// RefUserDoc references an embedded user.
func RefUserDoc(u *User) UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{ID: u.ID, User: u}
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.ID)
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = UserRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		r.User = nil
		return json.Unmarshal(data, &r.ID)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return err
	}
	*r = UserRef{ID: u.ID, User: &u}
	return nil
}

// TierRef is a subscription tier sent either as an id or as a document.
type TierRef struct {
	ID   string
	Tier *SubscriptionTier
}

func (r TierRef) MarshalJSON() ([]byte, error) {
	if r.Tier != nil {
		return json.Marshal(r.Tier)
	}
	return json.Marshal(r.ID)
}

func (r *TierRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = TierRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		r.Tier = nil
		return json.Unmarshal(data, &r.ID)
	}
	var t SubscriptionTier
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*r = TierRef{ID: t.ID, Tier: &t}
	return nil
}
