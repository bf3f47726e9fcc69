// Package knowledge holds the static, versioned rule tables driving every
// rule-based decision: script elements, SOPs, lexicons, risk flags, weights
// and thresholds. The Base value is built once and never mutated; evaluators
// receive it at construction time and iterate its ordered slices with
// deterministic first-match semantics.
package knowledge

import (
	"strings"

	"autoqa-go/internal/types"
)

// ScriptElement is one mandatory part of the call script.
type ScriptElement struct {
	Name        string
	Description string
	Points      int
	Phrases     []string
}

// SOP defines the expected handling of one customer issue type.
type SOP struct {
	Issue            string
	IssueKeywords    []string
	RequiredSteps    []string
	CorrectResponses []string
	ResolutionTime   string
}

// RiskFlag is one risk category with its severity tier.
type RiskFlag struct {
	Category           string
	Name               string
	Keywords           []string
	Severity           string
	RequiresSupervisor bool
}

// ComplaintCategory maps complaint keywords to a display name.
type ComplaintCategory struct {
	Key      string
	Name     string
	Keywords []string
	Priority string
}

// SentimentLexicon holds the keyword sets for sentiment analysis.
type SentimentLexicon struct {
	Positive          []string
	Negative          []string
	EscalationSignals []string
	EmpathyPhrases    []string
}

// CommunicationIndicators holds the communication-quality phrase lists.
type CommunicationIndicators struct {
	Positive             []string
	Negative             []string
	JargonToAvoid        []string
	InterruptionPatterns []string
}

// ScoreThresholds are the grade breakpoints.
type ScoreThresholds struct {
	Excellent        float64
	Good             float64
	NeedsImprovement float64
	Poor             float64
}

// Base is the complete knowledge base. Treat as read-only after Default().
type Base struct {
	ScriptElements           []ScriptElement
	SOPs                     []SOP
	Sentiment                SentimentLexicon
	Communication            CommunicationIndicators
	RiskFlags                []RiskFlag
	ComplaintCategories      []ComplaintCategory
	Weights                  map[string]float64
	Thresholds               ScoreThresholds
	SupervisorAlertThreshold float64
}

// Severity tiers for risk flags.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityNone     = "none"
)

// Default returns the built-in knowledge base for Battery Smart call QA.
func Default() *Base {
	return &Base{
		ScriptElements: []ScriptElement{
			{
				Name:        "greeting",
				Description: "Opening greeting",
				Points:      25,
				Phrases: []string{
					"thank you for calling battery smart",
					"welcome to battery smart",
					"good morning", "good afternoon", "good evening",
					"how may i help you", "how can i assist you",
					"battery smart customer support", "namaste",
				},
			},
			{
				Name:        "identity_verification",
				Description: "Customer verification",
				Points:      35,
				Phrases: []string{
					"phone number", "mobile number", "registered number",
					"battery id", "customer id", "account number",
					"verify your", "confirm your", "can you provide",
					"registered email", "your name please",
				},
			},
			{
				Name:        "closing",
				Description: "Closing script",
				Points:      25,
				Phrases: []string{
					"anything else", "further assistance",
					"thank you for calling", "have a great day",
					"is there anything else", "happy to help",
					"thank you for choosing battery smart",
				},
			},
			{
				Name:        "problem_acknowledgment",
				Description: "Problem acknowledgment",
				Points:      15,
				Phrases: []string{
					"i understand", "i apologize", "sorry for the inconvenience",
					"let me help", "i can help you with that",
					"i will look into this", "let me check",
				},
			},
		},
		SOPs: []SOP{
			{
				Issue:         "locked_battery",
				IssueKeywords: []string{"battery locked", "can't unlock", "locked out", "battery is locked"},
				RequiredSteps: []string{
					"ask for battery id",
					"check system status",
					"provide unlock code or escalate",
				},
				CorrectResponses: []string{
					"unlock code", "reset the battery", "visit nearest station",
					"escalate to technical team", "remote unlock", "otp sent",
				},
				ResolutionTime: "immediate",
			},
			{
				Issue:         "refund_request",
				IssueKeywords: []string{"refund", "money back", "charged wrongly", "wrong charge", "double billing", "overcharged"},
				RequiredSteps: []string{
					"verify transaction details",
					"check refund eligibility",
					"process or explain policy",
				},
				CorrectResponses: []string{
					"refund will be processed", "3-5 business days", "7 working days",
					"not eligible because", "refund policy states", "credited to your wallet",
					"bank account", "original payment method",
				},
				ResolutionTime: "3-7 days",
			},
			{
				Issue:         "swap_failure",
				IssueKeywords: []string{"swap failed", "couldn't swap", "station error", "swap not working", "slot jammed"},
				RequiredSteps: []string{
					"get station id",
					"log the issue",
					"provide alternative",
				},
				CorrectResponses: []string{
					"try station", "alternative station", "reported to operations",
					"technical team will check", "nearest station at", "station id noted",
					"free swap credit",
				},
				ResolutionTime: "immediate",
			},
			{
				Issue:         "charging_issue",
				IssueKeywords: []string{"not charging", "charge problem", "battery drain", "low charge", "draining fast"},
				RequiredSteps: []string{
					"check battery health",
					"verify usage patterns",
					"recommend solution",
				},
				CorrectResponses: []string{
					"swap for new battery", "battery health", "charging station",
					"normal usage", "replacement", "diagnostic", "health check",
				},
				ResolutionTime: "same day",
			},
			{
				Issue:         "overheating",
				IssueKeywords: []string{"overheating", "battery hot", "heating up", "warm battery", "sparks", "smoke"},
				RequiredSteps: []string{
					"document the issue",
					"safety instructions",
					"escalate to safety team",
				},
				CorrectResponses: []string{
					"stop using immediately", "do not charge", "safety team",
					"escalating to safety", "replacement", "priority", "callback within",
				},
				ResolutionTime: "2 hours (priority)",
			},
			{
				Issue:         "subscription_change",
				IssueKeywords: []string{"cancel subscription", "change plan", "upgrade", "downgrade", "plan expired"},
				RequiredSteps: []string{
					"verify current plan",
					"explain options",
					"process change",
				},
				CorrectResponses: []string{
					"current plan is", "upgrade to", "downgrade to", "plan benefits",
					"effective from", "prorated", "cancellation processed",
				},
				ResolutionTime: "immediate",
			},
			{
				Issue:         "app_login",
				IssueKeywords: []string{"can't login", "login issue", "otp not received", "password reset", "account locked"},
				RequiredSteps: []string{
					"verify identity",
					"check account status",
					"reset or unlock",
				},
				CorrectResponses: []string{
					"sending otp", "password reset link", "account unlocked",
					"try again", "clear cache", "reinstall app", "update app",
				},
				ResolutionTime: "immediate",
			},
			{
				Issue:         "station_locator",
				IssueKeywords: []string{"nearest station", "find station", "station location", "where is station"},
				RequiredSteps: []string{
					"get current location",
					"check nearby stations",
					"provide directions",
				},
				CorrectResponses: []string{
					"nearest station is", "km away", "directions", "open until",
					"available batteries", "app will show", "google maps",
				},
				ResolutionTime: "immediate",
			},
		},
		Sentiment: SentimentLexicon{
			Positive: []string{
				"thank you", "thanks", "great", "excellent", "helpful",
				"appreciate", "wonderful", "perfect", "awesome", "good job",
				"satisfied", "happy", "pleased", "amazing", "fantastic",
				"resolved", "fixed", "working now", "problem solved",
			},
			Negative: []string{
				"angry", "frustrated", "upset", "terrible", "worst",
				"unacceptable", "ridiculous", "pathetic", "useless", "waste",
				"disappointed", "annoyed", "horrible", "disgusted", "fed up",
				"sick of", "tired of", "enough", "last straw",
			},
			EscalationSignals: []string{
				"manager", "supervisor", "escalate", "higher authority",
				"not acceptable", "speak to someone else", "complaint",
				"consumer forum", "social media", "twitter", "review",
			},
			EmpathyPhrases: []string{
				"i understand", "i apologize", "sorry to hear",
				"i can imagine", "that must be frustrating",
				"let me help you", "i'm here to help",
				"i completely understand", "thank you for your patience",
			},
		},
		Communication: CommunicationIndicators{
			Positive: []string{
				"certainly", "absolutely", "of course", "happy to help",
				"let me explain", "to clarify", "in simple terms",
				"great question", "good point", "definitely",
			},
			Negative: []string{
				"i don't know", "not my job", "you should have",
				"as i said before", "i already told you", "that's not possible",
				"you're wrong", "calm down", "relax", "whatever",
			},
			JargonToAvoid: []string{
				"sop", "backend", "api", "system error code",
				"escalation matrix", "ticket id", "crm", "lifecycle",
				"sla", "tat", "nps",
			},
			InterruptionPatterns: []string{
				"let me finish", "i was saying", "you interrupted",
				"please let me complete", "hold on", "wait",
			},
		},
		RiskFlags: []RiskFlag{
			{
				Category: "legal_threats",
				Name:     "Legal Threats",
				Keywords: []string{
					"sue", "lawyer", "legal action", "court", "consumer forum",
					"legal notice", "police", "fir", "complaint against",
					"consumer rights", "ombudsman",
				},
				Severity:           SeverityCritical,
				RequiresSupervisor: true,
			},
			{
				Category: "safety_issues",
				Name:     "Safety Issues",
				Keywords: []string{
					"exploded", "fire", "burn", "shock", "electrocuted",
					"smoke", "sparks", "overheating", "dangerous", "injury",
					"accident", "hurt",
				},
				Severity:           SeverityCritical,
				RequiresSupervisor: true,
			},
			{
				Category: "abuse_harassment",
				Name:     "Abuse Harassment",
				Keywords: []string{
					"idiot", "stupid", "fool", "useless person",
					"threatening", "will find you", "curse words",
				},
				Severity:           SeverityCritical,
				RequiresSupervisor: true,
			},
			{
				Category: "churn_risk",
				Name:     "Churn Risk",
				Keywords: []string{
					"cancel subscription", "switch to", "competitor",
					"never use again", "done with battery smart", "closing account",
					"ather", "ola", "bounce", "yulu",
				},
				Severity:           SeverityHigh,
				RequiresSupervisor: false,
			},
			{
				Category: "compliance_violation",
				Name:     "Compliance Violation",
				Keywords: []string{
					"give you discount", "special offer just for you",
					"don't tell anyone", "between us", "i'll waive the fee",
					"off the record", "personal favor",
				},
				Severity:           SeverityHigh,
				RequiresSupervisor: true,
			},
			{
				Category: "media_threat",
				Name:     "Media Threat",
				Keywords: []string{
					"twitter", "facebook", "social media", "viral",
					"news", "media", "influencer", "youtube", "instagram",
				},
				Severity:           SeverityMedium,
				RequiresSupervisor: false,
			},
		},
		ComplaintCategories: []ComplaintCategory{
			{Key: "battery_issues", Name: "Battery Issues", Priority: "high", Keywords: []string{
				"battery locked", "can't unlock", "locked out", "battery is locked",
				"not charging", "won't charge", "charge problem", "low charge",
				"battery drain", "draining fast", "battery dead", "no power",
				"overheating", "battery hot", "heating up", "warm battery",
				"low capacity", "range reduced", "less range", "short range",
				"battery damaged", "swollen battery", "battery not working",
			}},
			{Key: "swap_station_issues", Name: "Swap Station Issues", Priority: "high", Keywords: []string{
				"swap failed", "couldn't swap", "station error", "swap not working",
				"station offline", "station down", "station closed",
				"no batteries available", "all slots empty", "no charged batteries",
				"slot jammed", "can't insert", "can't remove", "stuck battery",
				"card reader not working", "payment failed at station", "machine error",
				"wrong station", "station location wrong", "can't find station",
			}},
			{Key: "billing_issues", Name: "Billing & Payment Issues", Priority: "medium", Keywords: []string{
				"wrong charge", "overcharged", "charged twice", "double billing",
				"refund", "money back", "incorrect amount", "extra charge",
				"subscription issue", "plan not applied", "wrong plan",
				"payment failed", "transaction failed", "couldn't pay",
				"invoice wrong", "receipt missing", "bill not received",
				"wallet balance", "promocode not applied", "discount missing",
			}},
			{Key: "app_issues", Name: "App & Technical Issues", Priority: "medium", Keywords: []string{
				"app not working", "app crash", "app frozen", "login issue",
				"can't login", "otp not received", "password reset",
				"location not updating", "gps issue", "wrong location shown",
				"notification not received", "push notification",
				"app update issue", "old version", "compatibility",
				"profile update", "can't edit details", "account locked",
			}},
			{Key: "subscription_issues", Name: "Subscription & Plan Issues", Priority: "medium", Keywords: []string{
				"cancel subscription", "subscription cancellation", "end subscription",
				"change plan", "upgrade plan", "downgrade plan",
				"subscription not active", "plan expired", "renew subscription",
				"auto-renewal", "recurring charge", "subscription charge",
				"plan benefits", "what's included", "plan comparison",
			}},
			{Key: "delivery_issues", Name: "Home Delivery Issues", Priority: "medium", Keywords: []string{
				"delivery late", "not delivered", "wrong address",
				"delivery person", "rider issue", "battery delivery",
				"scheduled delivery", "reschedule delivery", "cancel delivery",
				"delivery tracking", "where is my battery", "delivery status",
			}},
			{Key: "vehicle_compatibility", Name: "Vehicle Compatibility Issues", Priority: "low", Keywords: []string{
				"battery not fitting", "wrong battery type", "incompatible",
				"vehicle model", "which battery", "battery for my vehicle",
				"connector issue", "terminal problem", "doesn't connect",
				"voltage mismatch", "capacity mismatch",
			}},
			{Key: "service_quality", Name: "Service Quality Complaints", Priority: "high", Keywords: []string{
				"rude staff", "unprofessional", "bad service", "poor service",
				"long wait", "waiting too long", "slow service",
				"wrong information", "misinformed", "lied to me",
				"not helpful", "didn't help", "ignored my complaint",
				"previous complaint", "complaint not resolved", "follow up",
			}},
			{Key: "safety_concerns", Name: "Safety & Emergency Issues", Priority: "critical", Keywords: []string{
				"fire", "smoke", "sparks", "burning smell", "explosion",
				"electric shock", "electrocuted", "shock hazard",
				"dangerous", "safety issue", "emergency", "accident",
				"injury", "hurt", "burn", "damaged vehicle",
			}},
			{Key: "general_inquiry", Name: "General Inquiries", Priority: "low", Keywords: []string{
				"how to", "how does", "what is", "explain",
				"pricing", "cost", "rates", "charges",
				"nearest station", "station location", "find station",
				"working hours", "opening time", "closing time",
				"registration", "new user", "sign up", "create account",
			}},
		},
		Weights: map[string]float64{
			types.PillarScriptAdherence:       0.30,
			types.PillarResolutionCorrectness: 0.30,
			types.PillarSentimentHandling:     0.20,
			types.PillarCommunicationQuality:  0.10,
			types.PillarRiskCompliance:        0.10,
		},
		Thresholds: ScoreThresholds{
			Excellent:        90,
			Good:             75,
			NeedsImprovement: 60,
			Poor:             40,
		},
		SupervisorAlertThreshold: 50,
	}
}

// CategoryName returns the display name for a detected issue key, falling
// back to a title-cased form of the key when no complaint category matches.
func (b *Base) CategoryName(issueKey string) string {
	for _, cat := range b.ComplaintCategories {
		if strings.Contains(cat.Key, issueKey) || strings.Contains(issueKey, cat.Key) {
			return cat.Name
		}
	}
	words := strings.Split(strings.ReplaceAll(issueKey, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
