// Package samples bundles canned call scenarios for the demo endpoint.
package samples

import "autoqa-go/internal/types"

// Sample pairs a canned transcript with demo metadata.
type Sample struct {
	Name       string
	Metadata   types.CallMetadata
	Transcript string
}

// Calls returns the demo scenarios, covering a model call, a badly handled
// call with a legal threat, a billing refund, a critical safety report and a
// swap-station outage.
func Calls() []Sample {
	return []Sample{
		{
			Name: "good_call_locked_battery",
			Metadata: types.CallMetadata{
				CallID: "CALL-1001", AgentID: "AGT-001", AgentName: "Priya Sharma",
				City: "Delhi", Timestamp: "2025-01-15T10:30:00Z", DurationSeconds: 240,
			},
			Transcript: goodCall,
		},
		{
			Name: "bad_call_legal_threat",
			Metadata: types.CallMetadata{
				CallID: "CALL-1002", AgentID: "AGT-002", AgentName: "Rahul Verma",
				City: "Gurgaon", Timestamp: "2025-01-15T11:05:00Z", DurationSeconds: 180,
			},
			Transcript: badCall,
		},
		{
			Name: "billing_refund",
			Metadata: types.CallMetadata{
				CallID: "CALL-1003", AgentID: "AGT-003", AgentName: "Anita Desai",
				City: "Delhi", Timestamp: "2025-01-15T12:40:00Z", DurationSeconds: 300,
			},
			Transcript: billingCall,
		},
		{
			Name: "safety_overheating",
			Metadata: types.CallMetadata{
				CallID: "CALL-1004", AgentID: "AGT-001", AgentName: "Priya Sharma",
				City: "Noida", Timestamp: "2025-01-15T14:10:00Z", DurationSeconds: 420,
			},
			Transcript: safetyCall,
		},
		{
			Name: "swap_station_empty",
			Metadata: types.CallMetadata{
				CallID: "CALL-1005", AgentID: "AGT-004", AgentName: "Vikram Singh",
				City: "Gurgaon", Timestamp: "2025-01-15T15:25:00Z", DurationSeconds: 260,
			},
			Transcript: swapStationCall,
		},
	}
}

const goodCall = `Agent: Thank you for calling Battery Smart customer support! My name is Priya. How may I help you today?
Customer: Hi, my battery is showing locked and I can't swap it at the station.
Agent: I apologize for the inconvenience. I can definitely help you with that. May I have your registered phone number to pull up your account?
Customer: Yes, it's 9876543210.
Agent: Thank you. And can you provide the battery ID? It should be on a sticker on the battery.
Customer: It says BS-2024-78456.
Agent: Perfect, I've found your account. Let me check the system status for your battery. I can see the battery got locked due to a sync problem at the station. I'm sending you an unlock code right now. You should receive an SMS with an OTP within 30 seconds.
Customer: Okay, got it. Thanks!
Agent: Great! Please try the swap again with this code. The nearest station to you is at MG Road, about 500 meters from your last swap location. It has 5 charged batteries available.
Customer: That worked! The battery is swapped now. Thank you so much.
Agent: I'm happy to help! Is there anything else I can assist you with today?
Customer: No, that's all. Thanks for the quick help.
Agent: You're welcome! Thank you for choosing Battery Smart. Have a great day!`

const badCall = `Agent: Hello?
Customer: Hi, I've been waiting for 20 minutes! This is ridiculous.
Agent: Yeah, we're busy. What's the problem?
Customer: My battery is locked and I'm stuck at the station! This is the third time this month!
Agent: Did you try restarting it?
Customer: That's not possible, it's locked! I need help NOW. I'm going to be late for work.
Agent: I don't know what's wrong. Maybe there's a system error code or something. You should have checked before coming to the station.
Customer: This is unacceptable! I've been a customer for 2 years and this is how you treat me?
Agent: Look, I already told you I can't help if the system is down. As I said before, just wait and try again later.
Customer: I want to speak to your manager right now! I'm going to file a complaint against you. I'll sue Battery Smart for this waste of my time. I'll post this on Twitter!
Agent: Fine, I'll transfer you. But the manager will tell you the same thing.
Customer: This is the worst service ever. I'm switching to Ather. They actually care about customers.
Agent: Whatever. Hold on.`

const billingCall = `Agent: Good afternoon, Battery Smart customer support. How can I assist you?
Customer: Hi, I need a refund. I was charged twice for my last swap yesterday.
Agent: I apologize for the inconvenience. Let me look into this for you. Can you confirm your registered phone number?
Customer: It's 8765432109.
Agent: Thank you. I can see the duplicate charge of Rs. 149 from yesterday at 3:45 PM. This appears to be a technical glitch during the transaction.
Customer: Yes, that's the one. I was charged 298 rupees for one swap!
Agent: I completely understand your frustration. According to our refund policy, duplicate charges are fully refundable. I'm initiating the refund right now.
Customer: How long will that take? I need that money back.
Agent: The refund will be processed within 3-5 business days and will be credited to your original payment method. You'll receive a confirmation SMS once it's processed.
Customer: That's too long. Can't you do it faster?
Agent: I wish I could expedite it, but that's the standard processing time from the bank's side. However, as a goodwill gesture, I'm adding Rs. 50 credit to your Battery Smart wallet that you can use immediately.
Customer: Okay, I guess that helps. Thanks.
Agent: Is there anything else I can help you with today?
Customer: No, that's all.
Agent: Thank you for calling Battery Smart. Have a good day!`

const safetyCall = `Agent: Thank you for calling Battery Smart. My name is Arjun. How may I help you?
Customer: I need to report something serious. My battery started smoking yesterday while it was charging in my scooter!
Agent: I understand this is very concerning. I apologize for this experience. First, are you safe? Were you or anyone else hurt?
Customer: No, I'm okay. I immediately disconnected it when I saw the smoke.
Agent: That was the right thing to do. Can I get your battery ID so I can log this immediately? This is a top priority safety matter.
Customer: Yes, it's BS-2024-99887. The battery was overheating and there was a burning smell! I'm worried it could have caused a fire.
Agent: Thank you for reporting this. Please do not use this battery under any circumstances. I'm escalating this to our safety team right away - they will contact you within 2 hours.
Customer: Will I get a replacement?
Agent: Absolutely. We will arrange for immediate pickup of this battery and provide you a replacement at no charge. Our safety team will also investigate this unit. Your safety is our top priority.
Customer: Okay, thank you for taking this seriously.
Agent: Of course. I've marked this as urgent priority. You'll receive a call from our safety team shortly. Is there anything else I can help you with?
Customer: No, just make sure this gets fixed.
Agent: I completely understand. We take this very seriously. Thank you for calling Battery Smart. Please stay safe!`

const swapStationCall = `Agent: Good morning! Thank you for calling Battery Smart. How can I assist you today?
Customer: Hi, I'm at the MG Road station and there are no charged batteries available. This is the second station I've tried!
Agent: I apologize for the inconvenience. Let me check the station status. Can I have your phone number and the station ID displayed on the machine?
Customer: 9988776655, and the station says STN-BLR-042.
Agent: Thank you. I can see that station is currently at low capacity. Our operations team is aware and a refill is scheduled within the next hour.
Customer: An hour? I need a battery now! I have to reach office.
Agent: I understand the urgency. Let me find the nearest available station for you. The station at Indiranagar, about 1.2 km away, has 8 charged batteries available right now.
Customer: Can you give me directions?
Agent: Certainly! From MG Road, head towards 100 Feet Road. The station is at the Shell petrol pump, on your left. You can also see it on your Battery Smart app.
Customer: Okay, I'll go there. But this keeps happening with the MG Road station.
Agent: I have noted your feedback. I'm also adding a free swap credit to your account for the inconvenience caused. You won't be charged for your next swap.
Customer: Alright, thanks for that.
Agent: You're welcome! Is there anything else I can help you with?
Customer: No, that's all.
Agent: Thank you for your patience. Have a great day ahead!`
