package submitterController

import (
	"context"
	"registry/internal/logger"
	. "registry/internal/models"
	"registry/internal/repositories"
	"registry/internal/utils"
	"strings"
	"time"
)

// SubmitterController owns submitter-session reconciliation and the
// records-by-submitter lookup. Both operations deliberately swallow store
// errors into benign fallback results; see Resolve and FindRecordsByMobile.
type SubmitterController struct {
	sessionRepo repositories.SessionRepository
	profileRepo repositories.ProfileRepository
	log         logger.Logger
	now         func() time.Time
}

func New(
	sessionRepo repositories.SessionRepository,
	profileRepo repositories.ProfileRepository,
) *SubmitterController {
	return &SubmitterController{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		log:         logger.New("SubmitterController"),
		now:         time.Now,
	}
}

// Resolve finds or creates the session for the exact (name, mobile) identity
// key and never fails: when the session store is absent or rejects the
// operation the result degrades to a transient session carrying only the
// given name and mobile. The outcome tag keeps that degradation observable.
func (sc *SubmitterController) Resolve(ctx context.Context, name, mobile string) ResolvedSession {
	log := sc.log.Function("Resolve")

	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)

	fallback := ResolvedSession{
		Session: SubmitterSession{
			SubmitterName:   name,
			SubmitterMobile: mobile,
		},
		Outcome: SessionFallback,
	}

	if sc.sessionRepo == nil {
		log.ErMsg("session store not configured, using transient session")
		return fallback
	}

	existing, err := sc.sessionRepo.FindLatestByIdentity(ctx, name, mobile)
	if err != nil {
		// Lookup failure is treated like "not found": try the insert path
		// before giving up on the store entirely.
		log.Warn("session lookup failed, attempting insert", "name", name, "error", err)
	}

	if err == nil && existing != nil {
		if touchErr := sc.sessionRepo.Touch(ctx, existing, sc.now()); touchErr != nil {
			// A failed touch must not fail resolution; return the row as found.
			log.Warn("failed to touch session, returning existing row",
				"sessionID", existing.ID, "error", touchErr)
		}
		return ResolvedSession{Session: *existing, Outcome: SessionRefreshed}
	}

	now := sc.now()
	session := SubmitterSession{
		SubmitterName:   name,
		SubmitterMobile: mobile,
		CreatedAt:       now,
		LastActiveAt:    now,
	}

	if createErr := sc.sessionRepo.Create(ctx, &session); createErr != nil {
		log.Warn("session store rejected insert, using transient session",
			"name", name, "error", createErr)
		return fallback
	}

	return ResolvedSession{Session: session, Outcome: SessionCreated}
}

// GetSession retrieves the most recently active stored session for the
// identity key without touching it. When the session store has nothing it
// falls back to the latest profile submitted under the same identity,
// returned as a transient session. Nil means the identity is unknown.
func (sc *SubmitterController) GetSession(
	ctx context.Context,
	name, mobile string,
) *SubmitterSession {
	log := sc.log.Function("GetSession")

	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)

	if sc.sessionRepo != nil {
		session, err := sc.sessionRepo.FindLatestByIdentity(ctx, name, mobile)
		if err == nil && session != nil {
			return session
		}
		if err != nil {
			log.Warn("session lookup failed, checking profiles", "name", name, "error", err)
		}
	}

	profile, err := sc.profileRepo.GetLatestBySubmitterIdentity(ctx, name, mobile)
	if err != nil || profile == nil {
		return nil
	}

	return &SubmitterSession{
		SubmitterName:   profile.SubmitterName,
		SubmitterMobile: profile.SubmitterMobile,
	}
}

// FindRecordsByMobile returns every profile submitted under the given mobile
// number, exact match first, normalized comparison second. Store errors at
// either stage surface as an empty result, indistinguishable from legitimate
// absence. The second return value is the submitter name off the first match.
func (sc *SubmitterController) FindRecordsByMobile(
	ctx context.Context,
	rawMobile string,
) ([]Profile, string) {
	log := sc.log.Function("FindRecordsByMobile")

	// "undefined" and "null" show up when a client interpolates a missing
	// value into the URL; never query for them.
	if rawMobile == "" || rawMobile == "undefined" || rawMobile == "null" {
		log.Warn("invalid submitter mobile, skipping lookup", "mobile", rawMobile)
		return nil, ""
	}

	profiles, err := sc.profileRepo.GetBySubmitterMobile(ctx, rawMobile)
	if err != nil {
		log.Er("exact-match lookup failed", err, "mobile", rawMobile)
		return nil, ""
	}

	if len(profiles) == 0 {
		log.Debug("exact match empty, trying normalized search", "mobile", rawMobile)

		all, allErr := sc.profileRepo.GetAllWithSubmitterMobile(ctx)
		if allErr != nil {
			log.Er("normalized lookup failed", allErr, "mobile", rawMobile)
			return nil, ""
		}

		normalized := utils.NormalizeMobile(rawMobile)
		for _, profile := range all {
			if profile.SubmitterMobile == "" {
				continue
			}
			if utils.NormalizeMobile(profile.SubmitterMobile) == normalized {
				profiles = append(profiles, profile)
			}
		}
	}

	if len(profiles) == 0 {
		return nil, ""
	}

	return profiles, profiles[0].SubmitterName
}
