package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type CampaignRequest struct {
	Brand          string   `json:"brand" validate:"required"`
	Product        string   `json:"product" validate:"required"`
	TargetAudience string   `json:"targetAudience" validate:"required"`
	Platforms      []string `json:"platforms" validate:"required,min=1,dive,oneof=instagram twitter linkedin tiktok facebook"`
	CampaignGoal   string   `json:"campaignGoal" validate:"required"`
	Tone           string   `json:"tone" validate:"required,oneof=professional casual humorous inspirational educational"`
	Constraints    []string `json:"constraints,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f.Tag.Get("json"))
		})
	})
	return validate
}

func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError is returned by Validate when the request is malformed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %s", f.Field, f.Rule))
	}
	return "invalid campaign request: " + strings.Join(parts, ", ")
}

func (r CampaignRequest) Validate() error {
	err := requestValidator().Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

type ComplianceStatus string

const (
	Approved      ComplianceStatus = "approved"
	NeedsRevision ComplianceStatus = "needs_revision"
	Rejected      ComplianceStatus = "rejected"
)

// ContentPiece is one generated unit of content. RawContent is only set when
// the content stage produced text that could not be decoded. Fields the model
// returned beyond the declared ones are kept in Extra and written back out.
type ContentPiece struct {
	Platform                  string           `json:"platform,omitempty"`
	PostText                  string           `json:"postText,omitempty"`
	Caption                   string           `json:"caption,omitempty"`
	Hashtags                  []string         `json:"hashtags,omitempty"`
	SuggestedImageDescription string           `json:"suggestedImageDescription,omitempty"`
	BestPostingTime           string           `json:"bestPostingTime,omitempty"`
	ComplianceStatus          ComplianceStatus `json:"complianceStatus,omitempty"`
	ComplianceNotes           []string         `json:"complianceNotes,omitempty"`
	RawContent                string           `json:"rawContent,omitempty"`
	Extra                     map[string]any   `json:"-"`
}

// contentPieceFields has the declared fields of ContentPiece without its methods.
type contentPieceFields ContentPiece

var (
	pieceKeys     map[string]bool
	pieceKeysOnce sync.Once
)

// declaredPieceKey reports whether key decodes into a declared field. Keys
// match case-insensitively, as encoding/json does.
func declaredPieceKey(key string) bool {
	pieceKeysOnce.Do(func() {
		t := reflect.TypeOf(ContentPiece{})
		pieceKeys = make(map[string]bool, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if name := jsonName(t.Field(i).Tag.Get("json")); name != "" {
				pieceKeys[strings.ToLower(name)] = true
			}
		}
	})
	return pieceKeys[strings.ToLower(key)]
}

func (p *ContentPiece) UnmarshalJSON(b []byte) error {
	var fields contentPieceFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for key, raw := range all {
		if declaredPieceKey(key) {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("content piece field %s: %w", key, err)
		}
		if fields.Extra == nil {
			fields.Extra = make(map[string]any)
		}
		fields.Extra[key] = v
	}
	*p = ContentPiece(fields)
	return nil
}

func (p ContentPiece) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(contentPieceFields(p))
	if err != nil || len(p.Extra) == 0 {
		return b, err
	}
	out := make(map[string]any, len(p.Extra))
	for key, v := range p.Extra {
		if !declaredPieceKey(key) {
			out[key] = v
		}
	}
	var declared map[string]json.RawMessage
	if err := json.Unmarshal(b, &declared); err != nil {
		return nil, err
	}
	for key, raw := range declared {
		out[key] = raw
	}
	return json.Marshal(out)
}

type ComplianceIssue struct {
	ContentPieceIndex int    `json:"contentPieceIndex"`
	Severity          string `json:"severity"`
	Category          string `json:"category"`
	Description       string `json:"description"`
	Suggestion        string `json:"suggestion,omitempty"`
}

type ComplianceReport struct {
	OverallStatus            ComplianceStatus  `json:"overallStatus"`
	BrandGuidelineCompliance bool              `json:"brandGuidelineCompliance"`
	LegalCompliance          bool              `json:"legalCompliance"`
	PlatformPolicyCompliance bool              `json:"platformPolicyCompliance"`
	AccessibilityScore       *float64          `json:"accessibilityScore,omitempty"`
	Issues                   []ComplianceIssue `json:"issues"`
	Notes                    []string          `json:"notes,omitempty"`
	RawOutput                string            `json:"rawOutput,omitempty"`
}

type ScheduledPost struct {
	Platform          string `json:"platform"`
	ContentIndex      int    `json:"contentIndex"`
	SuggestedDateTime string `json:"suggestedDateTime"`
	Timezone          string `json:"timezone"`
	Priority          int    `json:"priority"`
}

type ExecutionPlan struct {
	ScheduledPosts   []ScheduledPost `json:"scheduledPosts"`
	Recommendations  []string        `json:"recommendations"`
	EstimatedReach   string          `json:"estimatedReach,omitempty"`
	CampaignDuration string          `json:"campaignDuration"`
}

type CampaignResult struct {
	ResearchInsights map[string]any   `json:"researchInsights"`
	ContentPieces    []ContentPiece   `json:"contentPieces"`
	ComplianceReport ComplianceReport `json:"complianceReport"`
	ExecutionPlan    ExecutionPlan    `json:"executionPlan"`
}
