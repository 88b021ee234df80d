package profileController

import (
	"context"
	"registry/internal/events"
	"registry/internal/logger"
	. "registry/internal/models"
	"registry/internal/repositories"
	"registry/internal/services"
	"registry/internal/utils"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionResolver is the submitter-session reconciliation entry point.
// Satisfied by the submitter controller; abstracted here so profile creation
// can be tested without a session store.
type SessionResolver interface {
	Resolve(ctx context.Context, name, mobile string) ResolvedSession
}

type ProfileController struct {
	profileRepo        repositories.ProfileRepository
	resolver           SessionResolver
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	dateValidator      *utils.DateValidator
	log                logger.Logger
}

func New(
	profileRepo repositories.ProfileRepository,
	resolver SessionResolver,
	transactionService *services.TransactionService,
	eventBus *events.EventBus,
) *ProfileController {
	return &ProfileController{
		profileRepo:        profileRepo,
		resolver:           resolver,
		transactionService: transactionService,
		eventBus:           eventBus,
		dateValidator:      utils.NewDateValidator(),
		log:                logger.New("ProfileController"),
	}
}

// CreateProfile validates the form input, resolves the submitter session
// (which never fails; degradation is carried in the outcome tag) and inserts
// the record. Records are only ever created through this path.
func (pc *ProfileController) CreateProfile(
	ctx context.Context,
	input ProfileInput,
) (Profile, ResolvedSession, error) {
	log := pc.log.Function("CreateProfile")

	if err := input.Validate(); err != nil {
		return Profile{}, ResolvedSession{}, log.Err("invalid profile input", err)
	}

	dobResult := pc.dateValidator.ValidateAndConvert(input.Dob)
	if !dobResult.IsValid {
		return Profile{}, ResolvedSession{}, log.Error("invalid date of birth", "dob", input.Dob)
	}

	resolved := pc.resolver.Resolve(ctx, input.SubmitterName, input.SubmitterMobile)
	if resolved.Outcome == SessionFallback {
		log.Warn("submitter session degraded to transient",
			"submitterName", input.SubmitterName)
	}

	profile := input.ToProfile()
	profile.Dob = dobResult.StandardFormat

	if err := pc.profileRepo.Create(ctx, &profile); err != nil {
		return Profile{}, resolved, log.Err("failed to create profile", err)
	}

	pc.publish("created", profile.ID)

	return profile, resolved, nil
}

func (pc *ProfileController) GetProfiles(ctx context.Context) ([]Profile, error) {
	log := pc.log.Function("GetProfiles")

	profiles, err := pc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to get profiles", err)
	}

	return profiles, nil
}

func (pc *ProfileController) UpdateProfile(
	ctx context.Context,
	id int,
	input ProfileUpdateInput,
) (Profile, error) {
	log := pc.log.Function("UpdateProfile")

	if err := input.Validate(); err != nil {
		return Profile{}, log.Err("invalid profile update", err, "id", id)
	}

	dobResult := pc.dateValidator.ValidateAndConvert(input.Dob)
	if !dobResult.IsValid {
		return Profile{}, log.Error("invalid date of birth", "dob", input.Dob)
	}

	var updated Profile
	err := pc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		profile, err := pc.profileRepo.GetByID(txCtx, id)
		if err != nil {
			return log.Err("profile not found", err, "id", id)
		}

		input.Apply(profile)
		profile.Dob = dobResult.StandardFormat

		if err := pc.profileRepo.Update(txCtx, profile); err != nil {
			return log.Err("failed to update profile", err, "id", id)
		}

		updated = *profile
		return nil
	})
	if err != nil {
		return Profile{}, err
	}

	pc.publish("updated", id)

	return updated, nil
}

func (pc *ProfileController) DeleteProfile(ctx context.Context, id int) error {
	log := pc.log.Function("DeleteProfile")

	if _, err := pc.profileRepo.GetByID(ctx, id); err != nil {
		return log.Err("profile not found", err, "id", id)
	}

	if err := pc.profileRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete profile", err, "id", id)
	}

	pc.publish("deleted", id)

	return nil
}

// AggregateSubmitters groups records by the raw trimmed (name, mobile) pair
// and counts them, in insertion order of first appearance. The key is NOT
// phone-normalized: differently formatted numbers for the same person count
// as distinct submitters here, even though the detail lookup would resolve
// either form. Records without submitter info are skipped.
func (pc *ProfileController) AggregateSubmitters(profiles []Profile) []Submitter {
	log := pc.log.Function("AggregateSubmitters")

	type identityKey struct {
		name   string
		mobile string
	}

	index := make(map[identityKey]int)
	submitters := []Submitter{}

	for _, profile := range profiles {
		name := strings.TrimSpace(profile.SubmitterName)
		mobile := strings.TrimSpace(profile.SubmitterMobile)

		if name == "" || mobile == "" {
			log.Debug("skipping record without submitter identity", "profileID", profile.ID)
			continue
		}

		key := identityKey{name: name, mobile: mobile}
		if i, ok := index[key]; ok {
			submitters[i].RecordCount++
			continue
		}

		index[key] = len(submitters)
		submitters = append(submitters, Submitter{
			SubmitterName:   name,
			SubmitterMobile: mobile,
			RecordCount:     1,
		})
	}

	return submitters
}

func (pc *ProfileController) GetSubmitters(ctx context.Context) ([]Submitter, error) {
	log := pc.log.Function("GetSubmitters")

	profiles, err := pc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to get profiles for aggregation", err)
	}

	return pc.AggregateSubmitters(profiles), nil
}

// ExportProfilesCSV renders the full record set as CSV for the admin export.
func (pc *ProfileController) ExportProfilesCSV(ctx context.Context) ([]byte, error) {
	log := pc.log.Function("ExportProfilesCSV")

	profiles, err := pc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to get profiles for export", err)
	}

	writer, err := utils.NewCSVWriter([]string{
		"id", "name", "relation", "dob", "nakshatra", "rashi",
		"contact_number", "occupation", "address", "submitter_name", "submitter_mobile",
	})
	if err != nil {
		return nil, log.Err("failed to start csv export", err)
	}

	for _, p := range profiles {
		if err := writer.WriteRow(
			strconv.Itoa(p.ID), p.Name, p.Relation, p.Dob, p.Nakshatra, p.Rashi,
			p.ContactNumber, p.Occupation, p.Address, p.SubmitterName, p.SubmitterMobile,
		); err != nil {
			return nil, log.Err("failed to write csv row", err, "profileID", p.ID)
		}
	}

	data, err := writer.Bytes()
	if err != nil {
		return nil, log.Err("failed to finish csv export", err)
	}

	return data, nil
}

func (pc *ProfileController) publish(action string, profileID int) {
	if pc.eventBus == nil {
		return
	}

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "profile",
		Action:    action,
		Data:      map[string]any{"profileId": profileID},
		Timestamp: time.Now(),
	}

	if err := pc.eventBus.Publish("profiles", event); err != nil {
		pc.log.Function("publish").Warn("failed to publish profile event",
			"action", action, "profileID", profileID, "error", err)
	}
}
