package model

// ScriptTemplate is a built-in starter script selectable into the editor.
type ScriptTemplate struct {
	// Key is the machine identifier for the template.
	Key string

	// Name is the label shown in the template picker.
	Name string

	// Body is the full script text loaded into the editor.
	Body string
}

// Templates is the ordered list of built-in starter scripts.
var Templates = []ScriptTemplate{
	{
		Key:  "ad",
		Name: "Advertisement",
		Body: "Introducing our revolutionary product! Transform your workflow " +
			"with cutting-edge AI technology. Boost productivity by 300% and " +
			"save hours every day. Don't miss out on this game-changing " +
			"solution that's already trusted by thousands of professionals " +
			"worldwide. Get started today and experience the future of work!",
	},
	{
		Key:  "promo",
		Name: "Promotion",
		Body: "Special Offer Alert! Get 50% off our premium AI avatar " +
			"generator for a limited time only. Create professional talking " +
			"videos in minutes, not hours. Perfect for marketing, education, " +
			"and entertainment. Use code SPECIAL50 at checkout and start " +
			"creating amazing content today!",
	},
	{
		Key:  "tutorial",
		Name: "Tutorial",
		Body: "Welcome to our step-by-step tutorial! Today, I'll show you how " +
			"to create stunning AI avatar videos. First, write your script in " +
			"the text area. Then, choose your preferred avatar and voice " +
			"settings. Finally, click generate and download your video in " +
			"seconds! It's that simple to create professional content.",
	},
	{
		Key:  "presentation",
		Name: "Presentation",
		Body: "Good morning everyone! Today's presentation will cover our " +
			"quarterly results and future roadmap. We've achieved remarkable " +
			"growth with a 45% increase in revenue and expanded to three new " +
			"markets. Let me walk you through the key highlights and our " +
			"strategic initiatives for the upcoming quarter.",
	},
	{
		Key:  "welcome",
		Name: "Welcome",
		Body: "Welcome to our amazing platform! We're thrilled to have you " +
			"here. Whether you're a content creator, marketer, or educator, " +
			"you'll find everything you need to create professional videos " +
			"that engage and inspire your audience. Let's start creating " +
			"something incredible together!",
	},
	{
		Key:  "announcement",
		Name: "Announcement",
		Body: "Exciting news everyone! We're launching our brand new AI video " +
			"generator that will revolutionize how you create content. " +
			"Starting next week, you'll have access to advanced features, " +
			"more avatars, and faster processing times. Stay tuned for more " +
			"updates and get ready to transform your video creation process!",
	},
	{
		Key:  "testimonial",
		Name: "Testimonial",
		Body: "I've been using this AI video generator for three months now, " +
			"and it's completely transformed my content creation process. The " +
			"quality is incredible, the avatars look realistic, and I can " +
			"create professional videos in minutes instead of hours. It's " +
			"been a game-changer for my business!",
	},
	{
		Key:  "product",
		Name: "Product Demo",
		Body: "Let me show you our amazing new product! This innovative " +
			"solution combines cutting-edge technology with user-friendly " +
			"design. Watch as I demonstrate its key features: lightning-fast " +
			"processing, crystal-clear audio, and stunning visual quality. " +
			"Experience the difference that professional AI technology makes!",
	},
}

// TemplateByKey returns the template with the given key, or false when
// no such template exists.
func TemplateByKey(key string) (ScriptTemplate, bool) {
	for _, t := range Templates {
		if t.Key == key {
			return t, true
		}
	}
	return ScriptTemplate{}, false
}
