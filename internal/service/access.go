package service

// AccessService answers whether a Telegram user may use the bot. The
// allowlist is fixed at startup; an unknown id is simply not allowed.
type AccessService struct {
	allowed map[int64]struct{}
}

// NewAccessService builds the service from the configured user id list.
func NewAccessService(userIDs []int64) *AccessService {
	allowed := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = struct{}{}
	}
	return &AccessService{allowed: allowed}
}

// IsAllowed reports whether the user id is on the allowlist.
func (s *AccessService) IsAllowed(userID int64) bool {
	_, ok := s.allowed[userID]
	return ok
}
