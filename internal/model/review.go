package model

// Review is one customer testimonial shown in the rotating carousel.
type Review struct {
	Author string
	Role   string
	Quote  string
}

// Reviews is the fixed ordered testimonial sequence the carousel cycles
// through.
var Reviews = []Review{
	{
		Author: "Maya Chen",
		Role:   "Content Creator",
		Quote: "I've been using this AI video generator for three months " +
			"and it's completely transformed my content process. " +
			"Professional videos in minutes instead of hours.",
	},
	{
		Author: "Daniel Okoye",
		Role:   "Marketing Lead",
		Quote: "The avatars look realistic and the turnaround is " +
			"incredible. Our campaign production costs dropped by half.",
	},
	{
		Author: "Sofia Marques",
		Role:   "Educator",
		Quote: "My students actually watch the lessons now. Writing a " +
			"script and getting a presenter video back feels like magic.",
	},
	{
		Author: "Tom Eriksen",
		Role:   "Founder",
		Quote: "We shipped a full product walkthrough series in a single " +
			"afternoon. The quality is indistinguishable from studio work.",
	},
	{
		Author: "Priya Nair",
		Role:   "Social Media Manager",
		Quote: "Scheduling daily videos used to be impossible. Now it's a " +
			"script, an avatar, and a coffee break.",
	},
}
