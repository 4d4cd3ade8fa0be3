package wordlist

// Static seed material for generated wordlists. The seeds lead every list so
// the highest-value guesses are attempted first; generated pattern entries
// (base word + numeric suffix + optional special character) pad the list out
// to its size class.

var seedUsernames = []string{
	"admin",
	"administrator",
	"root",
	"sa",
	"dbadmin",
	"dbuser",
	"mysql",
	"sqladmin",
	"test",
	"tester",
	"user",
	"guest",
	"backup",
	"service",
	"app",
	"web",
}

var seedPasswords = []string{
	"admin",
	"password",
	"Password1",
	"P@ssw0rd",
	"123456",
	"12345678",
	"qwerty",
	"letmein",
	"welcome",
	"root",
	"toor",
	"changeme",
	"secret",
	"mysql",
	"database",
	"admin123",
}

var patternWords = []string{
	"admin", "password", "welcome", "summer", "winter", "spring", "autumn",
	"dragon", "monkey", "shadow", "master", "login", "secure", "server",
	"office", "system",
}

var patternSpecials = []string{"!", "@", "#"}
