package job

// Categories lists the informal-sector job categories offered by the
// platform.
var Categories = []string{
	"Cleaning & Housekeeping",
	"Construction & Carpentry",
	"Plumbing & Electrical",
	"Gardening & Landscaping",
	"Security & Watchman",
	"Cooking & Catering",
	"Childcare & Nanny",
	"Delivery & Transport",
	"Tailoring & Sewing",
	"Painting & Decoration",
	"Welding & Metal Work",
	"Mechanics & Repair",
	"Hair & Beauty Services",
	"Laundry Services",
	"General Labor",
	"Farm Work & Agriculture",
	"Shop Attendant",
	"Waiter & Waitress",
	"Other Services",
}

// Districts lists the 30 districts of Rwanda.
var Districts = []string{
	"Bugesera", "Burera", "Gakenke", "Gasabo", "Gatsibo",
	"Gicumbi", "Gisagara", "Huye", "Kamonyi", "Karongi",
	"Kayonza", "Kicukiro", "Kirehe", "Muhanga", "Musanze",
	"Ngoma", "Ngororero", "Nyabihu", "Nyagatare", "Nyamagabe",
	"Nyamasheke", "Nyanza", "Nyarugenge", "Nyaruguru", "Rubavu",
	"Ruhango", "Rulindo", "Rusizi", "Rutsiro", "Rwamagana",
}
