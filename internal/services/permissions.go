package services

import (
	"strings"

	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/envutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

// PermissionOracle answers the single capability question the status
// machine asks. The actor is always passed in explicitly; nothing here
// reads ambient session state.
type PermissionOracle interface {
	IsPrivileged(rd *ctxutil.RequestData) bool
}

type roleOracle struct {
	log        *logger.Logger
	privileged map[string]struct{}
}

func NewPermissionOracle(log *logger.Logger) PermissionOracle {
	raw := envutil.Str("PRIVILEGED_ROLES", "admin,manager")
	privileged := map[string]struct{}{}
	for _, role := range strings.Split(raw, ",") {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" {
			privileged[role] = struct{}{}
		}
	}
	return &roleOracle{
		log:        log.With("service", "PermissionOracle"),
		privileged: privileged,
	}
}

func (o *roleOracle) IsPrivileged(rd *ctxutil.RequestData) bool {
	if rd == nil {
		return false
	}
	_, ok := o.privileged[strings.ToLower(strings.TrimSpace(rd.Role))]
	return ok
}
