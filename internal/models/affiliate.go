package models

import "strings"

type AffiliateAccount struct {
	Code    string  `json:"code"`
	Status  string  `json:"status"`
	Balance float64 `json:"balance"`
}

type AffiliateStats struct {
	Code              string  `json:"code"`
	Status            string  `json:"status,omitempty"`
	Clicks            int     `json:"clicks"`
	Sales             int     `json:"sales"`
	TotalEarned       float64 `json:"total_earned"`
	PendingWithdrawal float64 `json:"pending_withdrawal"`
	Balance           float64 `json:"balance"`
}

type Affiliate struct {
	IsAffiliate bool              `json:"is_affiliate"`
	Affiliate   *AffiliateAccount `json:"affiliate,omitempty"`
	Stats       *AffiliateStats   `json:"stats,omitempty"`
}

// Code returns the referral code from whichever part of the payload carries it.
func (a *Affiliate) Code() string {
	if a == nil {
		return ""
	}
	if a.Stats != nil && a.Stats.Code != "" {
		return a.Stats.Code
	}
	if a.Affiliate != nil {
		return a.Affiliate.Code
	}
	return ""
}

func (a *Affiliate) status() string {
	if a == nil {
		return ""
	}
	if a.Stats != nil && a.Stats.Status != "" {
		return strings.ToLower(a.Stats.Status)
	}
	if a.Affiliate != nil {
		return strings.ToLower(a.Affiliate.Status)
	}
	return ""
}

func (a *Affiliate) IsApproved() bool {
	return a != nil && (a.IsAffiliate || a.status() == "approved")
}

// IsPending is an application still under review.
func (a *Affiliate) IsPending() bool {
	return a != nil && !a.IsAffiliate && a.status() == "pending"
}

func (a *Affiliate) Balance() float64 {
	if a == nil {
		return 0
	}
	if a.Stats != nil {
		return a.Stats.Balance
	}
	if a.Affiliate != nil {
		return a.Affiliate.Balance
	}
	return 0
}

type WithdrawalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	IBAN   string  `json:"iban" validate:"required,min=10,max=40"`
	Bank   string  `json:"bank" validate:"required"`
}

// Document is one uploaded file of an affiliate application.
type Document struct {
	Filename string
	Content  []byte
}

type AffiliateApplication struct {
	BIFront Document
	BIBack  Document
	Selfie  Document
}

type ReferralLink struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

type Location struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}
