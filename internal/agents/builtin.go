package agents

import "github.com/Xzone2486/Murf/internal/dialogue"

// Builtin returns the built-in agent library. Each entry recreates one
// of the original Murf challenge agents: its field schema, personas,
// voices, greeting, and where finalized records land.
func Builtin() []Agent {
	return []Agent{
		barista(),
		wellness(),
		tutor(),
		fraud(),
		grocery(),
		storyteller(),
		sdr(),
	}
}

// barista takes a complete coffee order and writes it to its own file,
// named after the customer.
func barista() Agent {
	return Agent{
		Name:     "barista",
		Label:    "NeuroBrew Coffee",
		Greeting: "Hi there! Welcome to NeuroBrew. What can I get started for you today?",
		Schema: dialogue.Schema{
			{Name: "drink_type", Kind: dialogue.KindScalar, Required: true, Description: "The type of drink (e.g., Latte, Cappuccino)"},
			{Name: "size", Kind: dialogue.KindScalar, Required: true, Description: "Size of the drink (Small, Medium, Large)"},
			{Name: "milk", Kind: dialogue.KindScalar, Required: true, Description: "Type of milk (Whole, Oat, Almond, Soy, None)"},
			{Name: "extras", Kind: dialogue.KindList, Description: "Extra items (e.g., Sugar, Whipped Cream)"},
			{Name: "name", Kind: dialogue.KindScalar, Required: true, Primary: true, Description: "Customer's name"},
		},
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "barista",
				Voice: "en-US-alicia",
				Instructions: "You are a friendly, energetic barista at 'NeuroBrew Coffee'. " +
					"Your goal is to take a complete coffee order. " +
					"You must fill in the following fields: Drink Type, Size, Milk preference, Extras (optional), and Customer Name. " +
					"Do not make up information. If a user hasn't specified something (like size or milk), ask them clarifying questions. " +
					"Record details with the 'task_update' tool as the customer provides them, adding extras with 'task_append'. " +
					"Once you have all the details, confirm the order with the user. " +
					"When the order is confirmed and complete, call the 'task_finalize' function.",
			},
		},
		Storage: StorageSpec{Layout: "file", Prefix: "order"},
	}
}

// wellness runs a short daily check-in and appends each one to a
// journal, remembering the previous entry across sessions.
func wellness() Agent {
	return Agent{
		Name:     "wellness",
		Label:    "Daily Wellness Companion",
		Greeting: "Hey there, it's your daily wellness check-in. How are you feeling today?",
		Schema: dialogue.Schema{
			{Name: "mood", Kind: dialogue.KindScalar, Required: true, Description: "How the user is feeling today (e.g. calm, stressed, happy, tired)"},
			{Name: "energy_level", Kind: dialogue.KindScalar, Required: true, Description: "User's current energy level"},
			{Name: "goals", Kind: dialogue.KindList, Required: true, Description: "List of 1-3 realistic daily intentions/goals"},
		},
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "companion",
				Voice: "en-US-matthew",
				Instructions: "You are a warm, supportive daily wellness companion, like a caring friend checking in. " +
					"NEVER diagnose or give medical advice. " +
					"Flow for every short session: greet warmly, ask how they're feeling (mood), ask about energy, " +
					"then ask for 1-3 small realistic goals. " +
					"Record each answer with 'task_update', adding goals one at a time with 'task_append'. " +
					"Offer one tiny grounded suggestion (e.g. 'maybe a short walk?'), recap and confirm, " +
					"then call 'task_finalize' when ready. " +
					"Be encouraging, gentle, and human.",
			},
		},
		Storage: StorageSpec{
			Layout:  "journal",
			Path:    "wellness_log.json",
			Summary: "Feeling {{mood}} with {{energy_level}} energy.",
		},
		MemoryLine: "Last time on {{weekday}}, you were feeling {{mood}}. How does today compare?",
	}
}

// tutor is the active recall coach: four personas over a shared topic
// list, each with its own Murf voice. It tracks no record; the whole
// session lives in the persona state machine.
func tutor() Agent {
	switchHint := "If the user wants a different mode, call the 'mode_switch' tool; " +
		"for another topic, call 'topic_select' or 'topic_next'."
	allTools := []string{"mode_switch", "topic_select", "topic_next"}

	return Agent{
		Name:     "tutor",
		Label:    "Active Recall Coach",
		Greeting: "Hello! I am your active recall coach. Please choose a topic to start: {{topic_list}}.",
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "selection",
				Voice: "en-US-matthew",
				Instructions: "You are a helpful tutor. List the available topics: {{topic_list}}. " +
					"Ask the user which one they want to learn about, then call the 'topic_select' tool.",
				Tools: allTools,
			},
			{
				Mode:  "learn",
				Voice: "en-US-matthew",
				Instructions: "You are Matthew, a helpful tutor. " +
					"Explain the concept: {{topic_title}}. " +
					"Summary: {{topic_summary}}. " +
					"Keep it clear and simple. " + switchHint,
				Tools: allTools,
			},
			{
				Mode:  "quiz",
				Voice: "en-US-alicia",
				Instructions: "You are Alicia, a quiz master. " +
					"Ask about: {{topic_title}}. " +
					"Question: {{probe_question}}. " +
					"Wait for the answer, then grade it. " + switchHint,
				Tools: allTools,
			},
			{
				Mode:  "teach_back",
				Voice: "en-US-ken",
				Instructions: "You are Ken, a curious student. " +
					"Ask the user to explain: {{topic_title}}. " +
					"Listen and give feedback based on: {{topic_summary}}. " + switchHint,
				Tools: allTools,
			},
		},
		Topics: []dialogue.Topic{
			{
				ID:       "variables",
				Title:    "Variables",
				Summary:  "A variable is a labeled box for storing data. In Python, you assign values like 'x = 5'. This lets you reuse data without typing it again.",
				Question: "In your own words, why do we use variables?",
			},
			{
				ID:       "loops",
				Title:    "Loops",
				Summary:  "Loops repeat actions. A 'For Loop' runs through a list. A 'While Loop' runs as long as a condition is true.",
				Question: "What is the difference between a For loop and a While loop?",
			},
		},
	}
}

// fraud verifies a flagged transaction against the case database.
func fraud() Agent {
	return Agent{
		Name:     "fraud",
		Label:    "Murf Bank Fraud Department",
		Greeting: "Hello, this is the Fraud Department at Murf Bank. I'm calling about some suspicious activity on your account. Could you please confirm your username so I can pull up your file?",
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "representative",
				Voice: "en-US-matthew",
				Instructions: "You are a fraud detection representative for Murf Bank. " +
					"Your goal is to verify a suspicious transaction with the customer. " +
					"You must be professional, calm, and reassuring. " +
					"Do NOT ask for real PII (passwords, full card numbers, PINs). " +
					"You have access to a database of fraud cases. " +
					"Start by asking for the customer's username to look up their file. " +
					"Once you have the username, use the 'case_lookup' tool to retrieve details. " +
					"Then, verify the user by asking their security question (found in the case details). " +
					"If they answer correctly, read the transaction details (Merchant, Amount, Date) and ask if they made it. " +
					"If they say YES: Mark the case as 'confirmed_safe' using 'case_update'. " +
					"If they say NO: Mark the case as 'confirmed_fraud' using 'case_update' and explain that the card is blocked. " +
					"If verification fails: End the call politely. " +
					"Always be concise.",
			},
		},
		CaseTools: true,
	}
}

// grocery builds an order item by item; finalized orders get
// timestamp-keyed files because no field names the customer.
func grocery() Agent {
	return Agent{
		Name:     "grocery",
		Label:    "FreshMart",
		Greeting: "Hi there! Welcome to FreshMart. I can help you order groceries. What would you like to get today?",
		Schema: dialogue.Schema{
			{Name: "items", Kind: dialogue.KindList, Required: true, Description: "Items to add to the order (e.g. Milk, Bread)"},
		},
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "assistant",
				Voice: "en-US-matthew",
				Instructions: "You are a friendly and helpful grocery shopping assistant for 'FreshMart'. " +
					"You can help users build an order and place it. " +
					"Add each item the user asks for with the 'task_append' tool. " +
					"Always confirm actions like adding items or placing orders. " +
					"If the user says they are done or wants to place the order, use the 'task_finalize' tool. " +
					"Keep your responses concise and natural for voice interaction.",
			},
		},
		Storage: StorageSpec{Layout: "file", Prefix: "order"},
	}
}

// storyteller runs an open-ended adventure. Nothing is ever finalized;
// the record just tracks the scene so a restart has something to clear.
func storyteller() Agent {
	return Agent{
		Name:     "storyteller",
		Label:    "Interactive Story Game Master",
		Greeting: "Hello! You're cleaning out your dusty attic when you stumble upon an old, weathered map tucked inside a book. It looks like it leads to somewhere nearby. What do you do?",
		Schema: dialogue.Schema{
			{Name: "scene", Kind: dialogue.KindScalar, Description: "Short description of the current scene"},
			{Name: "inventory", Kind: dialogue.KindList, Description: "Items the player is carrying"},
		},
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "narrator",
				Voice: "en-US-ken",
				Instructions: "You are a friendly Storyteller running a simple, interactive adventure. " +
					"Your goal is to guide the player through an easy-to-follow story. " +
					"Keep the language simple, clear, and engaging (standard English). " +
					"Scenario: The player has just found a mysterious old map in their attic. " +
					"Rule 1: Describe the scene simply (2-3 sentences). " +
					"Rule 2: ALWAYS end your turn by asking 'What do you do?'. " +
					"Rule 3: Maintain continuity, tracking the scene and the player's items with 'task_update' and 'task_append'. " +
					"Rule 4: If the player asks to restart, use the 'restart' tool.",
			},
		},
		RestartTool: true,
	}
}

// sdr captures inbound leads into a journal.
func sdr() Agent {
	return Agent{
		Name:     "sdr",
		Label:    "Razorpay Sales Development",
		Greeting: "Hi! Thanks for your interest in Razorpay. Can I get your name and email so I can follow up with more details?",
		Schema: dialogue.Schema{
			{Name: "name", Kind: dialogue.KindScalar, Required: true, Primary: true, Description: "The lead's name"},
			{Name: "email", Kind: dialogue.KindScalar, Required: true, Description: "The lead's email address"},
			{Name: "company", Kind: dialogue.KindScalar, Description: "The lead's company"},
		},
		Personas: []dialogue.PersonaSpec{
			{
				Mode:  "sdr",
				Voice: "en-US-matthew",
				Instructions: "You are a friendly sales development representative for Razorpay. " +
					"Answer questions about products and pricing, and capture the visitor as a lead. " +
					"Collect their name and email, plus their company when offered. " +
					"Record details with the 'task_update' tool as you learn them, " +
					"and call 'task_finalize' once the contact details are confirmed. " +
					"Keep your responses concise and natural for voice interaction.",
			},
		},
		Storage: StorageSpec{Layout: "journal", Path: "leads.json"},
	}
}
