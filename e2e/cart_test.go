//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
)

func playwrightValues(values ...string) playwright.SelectOptionValues {
	return playwright.SelectOptionValues{Values: &values}
}

// TestViewCartWithoutMerchant tests the cart page
// Feature: PayPal cart
//
//	As a customer
//	I want to open the PayPal cart
//	So that I can review and pay my items
func TestViewCartWithoutMerchant(t *testing.T) {
	// Scenario: Merchant id still the placeholder
	//   Given I am on the cart page
	//   Then I should see the missing merchant warning

	page := newPage(t)

	if _, err := page.Goto(baseURL + "/cart"); err != nil {
		t.Fatalf("Failed to navigate to cart: %v", err)
	}

	note, err := page.Locator("[data-paypal-view-cart] .note").TextContent()
	if err != nil {
		t.Fatalf("Failed to find warning: %v", err)
	}
	if note != "PayPal business/merchant ID fehlt. Bitte in shop.yaml eintragen." {
		t.Errorf("Unexpected warning '%s'", note)
	}
}

// TestMobileNavigation tests the navigation toggle
func TestMobileNavigation(t *testing.T) {
	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: 375, Height: 740},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	if _, err := page.Goto(baseURL + "/cart"); err != nil {
		t.Fatalf("Failed to navigate to cart: %v", err)
	}

	toggle := page.Locator("#mobileToggle")
	if err := toggle.Click(); err != nil {
		t.Fatalf("Failed to click toggle: %v", err)
	}

	expanded, err := toggle.GetAttribute("aria-expanded")
	if err != nil {
		t.Fatal(err)
	}
	if expanded != "true" {
		t.Errorf("Expected aria-expanded 'true', got '%s'", expanded)
	}

	current, err := page.Locator("#mobilePanel a[aria-current='page']").TextContent()
	if err != nil {
		t.Fatalf("Failed to find current link: %v", err)
	}
	if current != "Warenkorb" {
		t.Errorf("Expected current link 'Warenkorb', got '%s'", current)
	}
}
