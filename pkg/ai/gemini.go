// Package ai generates profile bios and listing descriptions with Gemini.
// Both are explicit one-shot user actions: a single attempt, no retries, the
// error goes straight back to the caller.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/utils/validation"
)

const bioSystemPrompt = "You are a professional copywriter helping real estate agents write short, compelling bios. " +
	"Write in first person. Keep it under 120 characters. Be professional but friendly."

const descriptionSystemPrompt = "You are a real estate copywriter. Write unique, compelling property descriptions. " +
	"Keep it under 120 characters. Be specific about the property details provided. " +
	"Vary your writing style - don't start every description the same way."

var client *genai.Client

// Init creates the shared Gemini client. Without an API key generation
// endpoints report the feature as unavailable.
func Init(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return fmt.Errorf("could not create Gemini client: %w", err)
	}

	client = c
	return nil
}

func Enabled() bool {
	return client != nil
}

func modelName() string {
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		return m
	}
	return "gemini-2.0-flash"
}

func generate(ctx context.Context, system, prompt string) (string, error) {
	result, err := client.Models.GenerateContent(ctx,
		modelName(),
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			MaxOutputTokens:   100,
		},
	)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.Text()), nil
}

// GenerateBio writes a first-person bio for the agent.
func GenerateBio(ctx context.Context, name, location string, agentType model.AgentType) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short professional bio for a real estate agent named %s", name)
	if location != "" {
		fmt.Fprintf(&b, " based in %s", location)
	}
	if agentType == model.AgentTypeAgency {
		b.WriteString(" who works with an agency.")
	} else {
		b.WriteString(" who is an independent agent.")
	}

	return generate(ctx, bioSystemPrompt, b.String())
}

// GenerateDescription writes a listing description from the fields filled in
// so far. Missing fields get neutral fallbacks rather than blocking the call.
func GenerateDescription(ctx context.Context, p *model.Property) (string, error) {
	listingType := "for sale"
	if p.Type == model.ListingTypeRent {
		listingType = "for rent"
	}

	category := string(p.Category)
	if category == "" {
		category = "property"
	}

	location := p.Location
	if location == "" {
		location = "prime location"
	}

	price := "competitive price"
	if formatted := validation.FormatPrice(p.Price); formatted != "" {
		price = formatted + " AED"
	}

	area := p.Area
	if area == "" {
		area = "spacious"
	}

	prompt := fmt.Sprintf(
		"Write a short property description for: %d bedroom %s %s in %s. Price: %s. %d bathrooms, %s sqft.",
		p.Bedrooms, category, listingType, location, price, p.Bathrooms, area,
	)

	return generate(ctx, descriptionSystemPrompt, prompt)
}
