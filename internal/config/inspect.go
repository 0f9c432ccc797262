package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is one configuration problem. Issues are reported, never fatal:
// the pages degrade to inline warnings instead.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Inspect checks a shop configuration and returns every issue found, in a stable order
func Inspect(shop *ShopConfig) []Issue {
	if shop == nil {
		return []Issue{{Field: "shop", Message: "configuration is missing"}}
	}

	var issues []Issue
	issues = append(issues, structIssues(shop)...)
	issues = append(issues, priceIssues(shop)...)

	if env := strings.TrimSpace(shop.PayPal.Environment); env != "" &&
		!strings.EqualFold(env, PayPalEnvLive) && !strings.EqualFold(env, PayPalEnvSandbox) {
		issues = append(issues, Issue{
			Field:   "paypal.env",
			Message: fmt.Sprintf("must be %q or %q, got %q (treated as live)", PayPalEnvLive, PayPalEnvSandbox, env),
		})
	}

	if IsPlaceholderMerchantID(strings.TrimSpace(shop.PayPal.MerchantID)) {
		issues = append(issues, Issue{
			Field:   "paypal.business",
			Message: "merchant id is missing or still the placeholder; the view-cart button is disabled",
		})
	}

	for _, key := range shop.Catalog.ItemKeys() {
		if key == "" {
			continue
		}
		if IsPlaceholderButtonID(shop.PayPal.ButtonID(key)) {
			issues = append(issues, Issue{
				Field:   "paypal.hosted_buttons." + key,
				Message: "hosted button id is missing or still the placeholder; the add-to-cart button is disabled",
			})
		}
	}

	for _, key := range shop.Catalog.DuplicateItemKeys() {
		issues = append(issues, Issue{
			Field:   "catalog." + key,
			Message: "item key is used more than once across variants and add-ons; they share one hosted button",
		})
	}

	issues = append(issues, unusedButtonIssues(shop)...)
	return issues
}

func structIssues(shop *ShopConfig) []Issue {
	err := validate.Struct(shop)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []Issue{{Field: "shop", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(errs))
	for _, fe := range errs {
		issues = append(issues, Issue{
			Field:   strings.TrimPrefix(fe.Namespace(), "ShopConfig."),
			Message: validationMessage(fe),
		})
	}
	return issues
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}

func priceIssues(shop *ShopConfig) []Issue {
	var issues []Issue
	for i, p := range shop.Catalog.Products {
		for j, v := range p.Variants {
			if v.Price.IsNegative() {
				issues = append(issues, Issue{
					Field:   fmt.Sprintf("catalog.products[%d].variants[%d].price", i, j),
					Message: "must not be negative",
				})
			}
		}
	}
	for i, a := range shop.Catalog.Addons {
		if a.Price.IsNegative() {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("catalog.addons[%d].price", i),
				Message: "must not be negative",
			})
		}
	}
	return issues
}

func unusedButtonIssues(shop *ShopConfig) []Issue {
	known := make(map[string]bool)
	for _, key := range shop.Catalog.ItemKeys() {
		known[key] = true
	}

	var unused []string
	for key := range shop.PayPal.HostedButtons {
		if !known[key] {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)

	issues := make([]Issue, 0, len(unused))
	for _, key := range unused {
		issues = append(issues, Issue{
			Field:   "paypal.hosted_buttons." + key,
			Message: "no variant or add-on uses this item key",
		})
	}
	return issues
}
