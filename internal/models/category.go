// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is the fixed practice category enumeration.
type Category string

const (
	CategoryOnboarding    Category = "onboarding"
	CategoryRenewal       Category = "renewal"
	CategoryExpansion     Category = "expansion"
	CategoryRisk          Category = "risk"
	CategoryCommunication Category = "communication"
	CategoryAdoption      Category = "adoption"
	CategoryGeneral       Category = "general"
)

// CategoryInfo pairs a category with its display label and icon reference.
// Counts are derived from published practices, never stored.
type CategoryInfo struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Count    int      `json:"count"`
}

// Categories returns the fixed category set in display order, with zero counts.
func Categories() []CategoryInfo {
	return []CategoryInfo{
		{Category: CategoryOnboarding, Label: "Onboarding", Icon: "rocket"},
		{Category: CategoryRenewal, Label: "Renewal", Icon: "refresh"},
		{Category: CategoryExpansion, Label: "Expansion", Icon: "trending-up"},
		{Category: CategoryRisk, Label: "Risk", Icon: "alert-triangle"},
		{Category: CategoryCommunication, Label: "Communication", Icon: "message-circle"},
		{Category: CategoryAdoption, Label: "Adoption", Icon: "users"},
		{Category: CategoryGeneral, Label: "General", Icon: "book-open"},
	}
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryOnboarding, CategoryRenewal, CategoryExpansion, CategoryRisk,
		CategoryCommunication, CategoryAdoption, CategoryGeneral:
		return true
	}
	return false
}
