package variable

const (
	CategoryPatient     = "Patient"
	CategoryAppointment = "Appointment"
	CategoryPractice    = "Practice"
	CategorySender      = "Sender"
)

// Default is the catalog compiled into the builder.
var Default = NewRegistry(
	Definition{Token: "patient.firstName", Category: CategoryPatient, Description: "Recipient's first name", Example: "John"},
	Definition{Token: "patient.lastName", Category: CategoryPatient, Description: "Recipient's last name", Example: "Smith"},
	Definition{Token: "patient.fullName", Category: CategoryPatient, Description: "Recipient's full name", Example: "John Smith"},
	Definition{Token: "patient.email", Category: CategoryPatient, Description: "Recipient's email address", Example: "john.smith@example.com"},
	Definition{Token: "patient.phone", Category: CategoryPatient, Description: "Recipient's phone number", Example: "(555) 123-4567"},
	Definition{Token: "patient.dateOfBirth", Category: CategoryPatient, Description: "Recipient's date of birth", Example: "1985-04-12"},

	Definition{Token: "appointment.date", Category: CategoryAppointment, Description: "Date of the upcoming appointment", Example: "March 14, 2025"},
	Definition{Token: "appointment.time", Category: CategoryAppointment, Description: "Start time of the appointment", Example: "10:30 AM"},
	Definition{Token: "appointment.provider", Category: CategoryAppointment, Description: "Provider seeing the recipient", Example: "Dr. Sarah Lee"},
	Definition{Token: "appointment.type", Category: CategoryAppointment, Description: "Kind of visit", Example: "Annual checkup"},
	Definition{Token: "appointment.location", Category: CategoryAppointment, Description: "Where the appointment takes place", Example: "Suite 200"},
	Definition{Token: "appointment.confirmUrl", Category: CategoryAppointment, Description: "Link that confirms the appointment", Example: "https://example.com/confirm/abc123"},

	Definition{Token: "practice.name", Category: CategoryPractice, Description: "Name of the practice", Example: "Riverside Family Clinic"},
	Definition{Token: "practice.phone", Category: CategoryPractice, Description: "Front desk phone number", Example: "(555) 987-6543"},
	Definition{Token: "practice.address", Category: CategoryPractice, Description: "Street address of the practice", Example: "120 Main St, Springfield"},
	Definition{Token: "practice.website", Category: CategoryPractice, Description: "Practice website", Example: "https://riversideclinic.example.com"},
	Definition{Token: "practice.email", Category: CategoryPractice, Description: "Practice contact email", Example: "hello@riversideclinic.example.com"},

	Definition{Token: "sender.name", Category: CategorySender, Description: "Staff member sending the message", Example: "Emily Carter"},
	Definition{Token: "sender.title", Category: CategorySender, Description: "Job title of the sender", Example: "Office Manager"},
	Definition{Token: "unsubscribe.url", Category: CategorySender, Description: "Link that opts the recipient out", Example: "https://example.com/unsubscribe/abc123"},
)
