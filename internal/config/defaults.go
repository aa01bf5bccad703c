package config

import "time"

// Default values for configuration
const (
	// Weather defaults
	DefaultCity            = "Sevastopol"
	DefaultWeatherBaseURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherUnits    = "metric"
	DefaultWeatherLanguage = "ru"
	DefaultWeatherTimeout  = 10 * time.Second

	// Telegram defaults
	DefaultTelegramTimeout = 30 * time.Second

	// Resource defaults
	DefaultQuotesPath     = "quotes.txt"
	DefaultBackgroundPath = "background.jpg"
	DefaultImageFilename  = "morning.jpg"
	DefaultImageQuality   = 90

	// Misc defaults
	DefaultTimezone = "Europe/Simferopol"
	DefaultLogLevel = "info"

	// MorningTaskName is the scheduler key of the greeting job.
	MorningTaskName        = "morning_greeting"
	DefaultMorningSchedule = "0 0 7 * * *"

	// CaptionLimit is the Telegram limit for photo captions, in characters.
	CaptionLimit = 1024
)

// DefaultFontPaths are tried in order before falling back to the built-in face.
var DefaultFontPaths = []string{
	"DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

// DefaultRoster returns the people whose next birthday is counted down.
func DefaultRoster() []Person {
	return []Person{
		{Name: "Доктор", Birth: civil(1984, time.September, 7)},
		{Name: "Гарибальди", Birth: civil(1984, time.February, 22)},
		{Name: "Леха", Birth: civil(1989, time.August, 27)},
		{Name: "Шурин", Birth: civil(1981, time.April, 18)},
		{Name: "Вандал", Birth: civil(1982, time.December, 1)},
	}
}

// DefaultGreetingTexts returns the fixed wording of the morning message.
func DefaultGreetingTexts() GreetingTexts {
	return GreetingTexts{
		Opening: []string{
			"Доброе утро ячейка!",
			"Никто за ночь не помер?",
			"Тогда погнали!",
		},
		QuotePrefix:         "Как говорил Дж. Стэйтем: ",
		RosterHeader:        "До очередного устаревания:",
		RosterLineFormat:    "%s — %d дней",
		WeatherPrefix:       "Погода в Севастополе на сегодня: ",
		WeatherFormat:       "%s, %d°C",
		WeatherFailedFormat: "не удалось получить погоду (%v)",
		Closing: []string{
			"Хорошего дня пацаны!",
			"Не лажайте!",
		},
		QuotesEmpty:     "Цитаты кончились :(",
		QuoteLostFormat: "Цитата дня потерялась: %v",
		CaptionLimit:    CaptionLimit,
	}
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
