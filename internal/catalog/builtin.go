package catalog

import "scamquiz/internal/engine"

// BuiltIn returns the default three-level catalog shipped with the binary.
func BuiltIn() *Catalog {
	c, err := New(builtInLevels())
	if err != nil {
		panic("catalog: built-in content invalid: " + err.Error())
	}
	return c
}

func builtInLevels() map[int][]Scenario {
	return map[int][]Scenario{
		1: {
			{
				Type:    SkinEmail,
				Sender:  "PayPal Security <security@paypa1-alerts.com>",
				Subject: "Your account has been limited",
				Context: "We noticed unusual activity on your account. To avoid permanent suspension, " +
					"confirm your identity within 24 hours using the secure link below.",
				Choices: []Choice{
					{Text: "Click the link and confirm my details", Outcome: engine.Risky},
					{Text: "Check the sender address and open PayPal directly in my browser", Outcome: engine.Safe},
					{Text: "Reply asking why my account was limited", Outcome: engine.Risky},
					{Text: "Report the email as phishing and delete it", Outcome: engine.Safe},
				},
				Explanation: "The domain paypa1-alerts.com swaps an 'l' for a '1'. Urgent deadlines and " +
					"login links are classic phishing signs. Always go to the real site yourself.",
			},
			{
				Type:    SkinTelegram,
				Sender:  "Crypto Support Team",
				Context: "Hello! Your wallet was selected for our airdrop of 0.5 BTC. To receive it, send " +
					"0.01 BTC for the network verification fee to the address below.",
				Choices: []Choice{
					{Text: "Send the small fee to unlock the reward", Outcome: engine.Risky},
					{Text: "Block the account and report it", Outcome: engine.Safe},
					{Text: "Ask for proof that the airdrop is real", Outcome: engine.Risky},
				},
				Explanation: "Legitimate giveaways never ask you to pay first. Unsolicited 'support' " +
					"accounts on chat apps are a common advance-fee scam.",
			},
		},
		2: {
			{
				Type:    SkinDating,
				Sender:  "Sophie",
				Context: "Travel nurse, love hiking and dogs. We matched yesterday and already talk every " +
					"day. Now I'm stuck abroad and my card was blocked. Could you lend me $300 for a " +
					"ticket home? I'll pay you back next week, promise.",
				Choices: []Choice{
					{Text: "Send the money, she seems genuine", Outcome: engine.Risky},
					{Text: "Suggest a video call first and refuse to send money", Outcome: engine.Safe},
					{Text: "Send half the amount as a compromise", Outcome: engine.Risky},
					{Text: "Unmatch and report the profile", Outcome: engine.Safe},
				},
				Explanation: "Romance scammers build trust fast, then invent an emergency. Never send " +
					"money to someone you have not met in person.",
			},
			{
				Type:    SkinEmail,
				Sender:  "IT Service Desk <helpdesk@company-it-support.net>",
				Subject: "Mailbox storage full - action required",
				Context: "Your mailbox has exceeded its quota. Incoming mail will be rejected. Log in " +
					"through the attached form to increase your storage.",
				Choices: []Choice{
					{Text: "Open the attached form and log in", Outcome: engine.Risky},
					{Text: "Contact IT through the official intranet or phone number", Outcome: engine.Safe},
					{Text: "Forward the email to colleagues to warn them", Outcome: engine.Risky},
				},
				Explanation: "Internal IT does not use external look-alike domains. Credential forms in " +
					"attachments harvest passwords. Verify through a known channel.",
			},
		},
		3: {
			{
				Type:    SkinTelegram,
				Sender:  "Mom",
				Context: "Hi honey, this is my new number, my phone broke. I need to pay a bill urgently " +
					"today but my banking app is locked. Can you transfer 1,200 for me? I'll explain later.",
				Choices: []Choice{
					{Text: "Transfer the money right away", Outcome: engine.Risky},
					{Text: "Call Mom on her old number to check", Outcome: engine.Safe},
					{Text: "Ask a personal question only she would know", Outcome: engine.Safe},
				},
				Explanation: "The 'new number' family scam relies on urgency and emotion. Verify by " +
					"calling the person on a number you already know.",
			},
			{
				Type:    SkinDating,
				Sender:  "Daniel",
				Context: "Investment banker, 31. I've been making great returns on a crypto trading " +
					"platform my uncle runs. I can show you how, just sign up through my link and " +
					"deposit a little to start.",
				Choices: []Choice{
					{Text: "Sign up and deposit a small amount to try", Outcome: engine.Risky},
					{Text: "Decline and report the profile for investment fraud", Outcome: engine.Safe},
					{Text: "Ask him to send screenshots of his profits", Outcome: engine.Risky},
				},
				Explanation: "'Pig butchering' scams mix romance with fake investment platforms. " +
					"Screenshots are easy to fake and deposits are never returned.",
			},
			{
				Type:    SkinEmail,
				Sender:  "DHL Express <notice@dhl-parcel-redelivery.info>",
				Subject: "Parcel on hold: unpaid customs fee",
				Context: "Your parcel could not be delivered because a customs fee of 2.99 EUR is unpaid. " +
					"Pay within 48 hours or the parcel will be returned to sender.",
				Choices: []Choice{
					{Text: "Pay the small fee through the link", Outcome: engine.Risky},
					{Text: "Track the parcel on the official carrier website", Outcome: engine.Safe},
					{Text: "Enter my card details to check if it is real", Outcome: engine.Risky},
				},
				Explanation: "Tiny fees lower your guard, but the goal is your card details. Carriers " +
					"do not send payment links from random domains.",
			},
		},
	}
}
