package wellness

// Helpline is a support service shown alongside urgent screening results.
type Helpline struct {
	Name  string
	Hours string
	URL   string
}

// CrisisMessage leads the helpline list on urgent results.
const CrisisMessage = "If you are thinking about harming yourself, please reach out now. These helplines can talk with you, and emergency services can help immediately."

// Helplines lists the support services offered to users who report
// thoughts of self-harm.
var Helplines = []Helpline{
	{Name: "Vandrevala Foundation", Hours: "24x7 helpline", URL: "https://vandrevalafoundation.com/"},
	{Name: "iCALL Psychosocial Helpline", Hours: "Mon-Sat", URL: "https://www.icallhelpline.org/"},
	{Name: "The Live Love Laugh Foundation", Hours: "Resources and helplines", URL: "https://www.thelivelovelaughfoundation.org/helpline"},
}
