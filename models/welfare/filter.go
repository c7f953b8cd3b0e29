package welfare

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SearchFilter holds the selections of one search invocation.
type SearchFilter struct {
	LifeStage     string `json:"lifeStage,omitempty"`
	TargetGroup   string `json:"targetGroup,omitempty"`
	InterestTheme string `json:"interestTheme,omitempty"`
	PageNumber    int    `json:"pageNumber"`
	PageSize      int    `json:"pageSize"`
}

// NewSearchFilter returns a validated filter on the first page.
func NewSearchFilter(lifeStage, targetGroup, interestTheme string, pageSize int) (SearchFilter, error) {
	f := SearchFilter{
		LifeStage:     lifeStage,
		TargetGroup:   targetGroup,
		InterestTheme: interestTheme,
		PageNumber:    1,
		PageSize:      pageSize,
	}
	if err := f.Validate(); err != nil {
		return SearchFilter{}, err
	}
	return f, nil
}

// Validate checks the filter codes against the code tables and the paging bounds.
func (f SearchFilter) Validate() error {
	if !LifeStages.Contains(f.LifeStage) {
		return fmt.Errorf("unknown life stage code %q", f.LifeStage)
	}
	if !TargetGroups.Contains(f.TargetGroup) {
		return fmt.Errorf("unknown target group code %q", f.TargetGroup)
	}
	if !InterestThemes.Contains(f.InterestTheme) {
		return fmt.Errorf("unknown interest theme code %q", f.InterestTheme)
	}
	if f.PageNumber < 1 {
		return fmt.Errorf("page number must be positive, got %d", f.PageNumber)
	}
	if !slices.Contains(PageSizes, f.PageSize) {
		return fmt.Errorf("page size must be one of %v, got %d", PageSizes, f.PageSize)
	}
	return nil
}

// WithPage returns a copy of the filter on another page. Pages below 1 are clamped to 1.
func (f SearchFilter) WithPage(page int) SearchFilter {
	if page < 1 {
		page = 1
	}
	f.PageNumber = page
	return f
}

// Codes returns the non-empty filter codes keyed by their query parameter.
func (f SearchFilter) Codes() map[string]string {
	codes := make(map[string]string, 3)
	if f.LifeStage != "" {
		codes[LifeStages.Param] = f.LifeStage
	}
	if f.TargetGroup != "" {
		codes[TargetGroups.Param] = f.TargetGroup
	}
	if f.InterestTheme != "" {
		codes[InterestThemes.Param] = f.InterestTheme
	}
	return codes
}
