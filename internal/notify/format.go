package notify

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonesrussell/goleads/internal/inference"
	"github.com/jonesrussell/goleads/internal/models"
)

func formatSubject(lead *models.Lead) string {
	return fmt.Sprintf("New Lead: %s - %s Priority",
		lead.CompanyName, strings.ToUpper(string(lead.Urgency)))
}

func formatEmailBody(lead *models.Lead) string {
	var b strings.Builder
	b.WriteString("New Lead Discovered\n\n")
	fmt.Fprintf(&b, "Company: %s\n", lead.CompanyName)
	if lead.CompanyDetails.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", lead.CompanyDetails.Industry)
	}
	fmt.Fprintf(&b, "Priority: %s\n", strings.ToUpper(string(lead.Urgency)))
	fmt.Fprintf(&b, "Lead Score: %s\n\n", inference.DescribeScore(lead.LeadScore))

	if len(lead.ProductRecommendations) > 0 {
		b.WriteString("Product Recommendations:\n")
		for _, rec := range lead.ProductRecommendations {
			fmt.Fprintf(&b, "- %s (%s): %d%% confidence\n  Reason: %s\n",
				rec.Product, rec.ProductName,
				int(math.Round(rec.Confidence*100)),
				strings.Join(rec.ReasonCodes, ", "))
		}
		b.WriteString("\n")
	}

	if len(lead.Signals) > 0 {
		b.WriteString("Signals:\n")
		for _, s := range lead.Signals {
			fmt.Fprintf(&b, "- %s: %s (%s)\n",
				s.SourceType, s.Source, s.Timestamp.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	action := "Contact and qualify the lead"
	if lead.NextAction != nil {
		action = lead.NextAction.Action
	}
	fmt.Fprintf(&b, "Next Action: %s\n", action)
	return b.String()
}

func formatShortMessage(lead *models.Lead) string {
	product := "-"
	if len(lead.ProductRecommendations) > 0 {
		product = lead.ProductRecommendations[0].Product
	}
	return fmt.Sprintf("New Lead: %s (%s). Score: %d. Products: %s. Check app for details.",
		lead.CompanyName, strings.ToUpper(string(lead.Urgency)),
		roundScore(lead.LeadScore.Total), product)
}

func formatChatMessage(lead *models.Lead) string {
	var products []string
	for _, rec := range lead.ProductRecommendations {
		products = append(products, fmt.Sprintf("%s (%d%%)",
			rec.Product, int(math.Round(rec.Confidence*100))))
	}
	action := "Contact and qualify"
	if lead.NextAction != nil {
		action = lead.NextAction.Action
	}
	return fmt.Sprintf(
		"*New Lead Alert*\n\n*Company:* %s\n*Priority:* %s\n*Score:* %s\n\n*Recommended Products:* %s\n\n*Action:* %s",
		lead.CompanyName, strings.ToUpper(string(lead.Urgency)),
		inference.DescribeScore(lead.LeadScore),
		strings.Join(products, ", "), action)
}

func roundScore(total float64) int {
	return int(math.Round(total))
}
