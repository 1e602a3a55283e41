package faker

type localeData struct {
	country    string
	firstNames []string
	lastNames  []string
	streets    []string
	cities     []string
	// address renders number, street, city and postcode for the locale.
	address func(number int, street, city, postcode string) string
	postcode func(g *ProfileProvider) string
}

var locales = map[string]localeData{
	"en_GB": {
		country:    "United Kingdom",
		firstNames: []string{"Oliver", "Amelia", "Harry", "Isla", "George", "Ava", "Jack", "Emily", "Charlie", "Sophie"},
		lastNames:  []string{"Smith", "Jones", "Taylor", "Brown", "Williams", "Wilson", "Evans", "Thomas", "Roberts", "Walker"},
		streets:    []string{"High Street", "Station Road", "Church Lane", "Victoria Road", "Green Lane", "Manor Road"},
		cities:     []string{"London", "Leeds", "Bristol", "Manchester", "York", "Norwich"},
		address: func(n int, street, city, pc string) string {
			return itoa(n) + " " + street + ", " + city + ", " + pc
		},
		postcode: func(g *ProfileProvider) string {
			return g.letters(2) + itoa(g.rng.Intn(20)+1) + " " + itoa(g.rng.Intn(10)) + g.letters(2)
		},
	},
	"en_US": {
		country:    "United States",
		firstNames: []string{"James", "Mary", "Michael", "Patricia", "Robert", "Jennifer", "David", "Linda", "William", "Elizabeth"},
		lastNames:  []string{"Johnson", "Miller", "Davis", "Garcia", "Rodriguez", "Martinez", "Anderson", "Moore", "Jackson", "White"},
		streets:    []string{"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Park Boulevard", "Elm Street"},
		cities:     []string{"Springfield", "Austin", "Denver", "Portland", "Columbus", "Raleigh"},
		address: func(n int, street, city, pc string) string {
			return itoa(n) + " " + street + ", " + city + " " + pc
		},
		postcode: func(g *ProfileProvider) string { return g.digits(5) },
	},
	"en_CA": {
		country:    "Canada",
		firstNames: []string{"Liam", "Olivia", "Noah", "Emma", "Logan", "Charlotte", "Lucas", "Chloé", "Ethan", "Zoé"},
		lastNames:  []string{"Tremblay", "Martin", "Roy", "Wilson", "MacDonald", "Gagnon", "Campbell", "Côté", "Stewart", "Bouchard"},
		streets:    []string{"Queen Street", "Yonge Street", "Rue Sainte-Catherine", "King Street West", "Jasper Avenue"},
		cities:     []string{"Toronto", "Montréal", "Vancouver", "Calgary", "Ottawa", "Halifax"},
		address: func(n int, street, city, pc string) string {
			return itoa(n) + " " + street + ", " + city + " " + pc
		},
		postcode: func(g *ProfileProvider) string {
			return g.letters(1) + g.digits(1) + g.letters(1) + " " + g.digits(1) + g.letters(1) + g.digits(1)
		},
	},
	"fr_FR": {
		country:    "France",
		firstNames: []string{"Léa", "Hugo", "Chloé", "Louis", "Manon", "Gabriel", "Inès", "Raphaël", "Camille", "Jérôme"},
		lastNames:  []string{"Martin", "Bernard", "Dubois", "Lefèvre", "Moreau", "Laurent", "Girard", "Rousseau", "Fournier", "Mercier"},
		streets:    []string{"rue de la Paix", "avenue Victor Hugo", "boulevard Saint-Michel", "rue des Écoles", "place de la République"},
		cities:     []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nantes", "Besançon"},
		address: func(n int, street, city, pc string) string {
			return itoa(n) + ", " + street + ", " + pc + " " + city
		},
		postcode: func(g *ProfileProvider) string { return g.digits(5) },
	},
	"de_DE": {
		country:    "Germany",
		firstNames: []string{"Lukas", "Mia", "Jonas", "Hannah", "Felix", "Lena", "Jürgen", "Sophie", "Maximilian", "Anna"},
		lastNames:  []string{"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schäfer", "Koch"},
		streets:    []string{"Hauptstraße", "Schulstraße", "Bahnhofstraße", "Gartenweg", "Lindenallee", "Bergstraße"},
		cities:     []string{"Berlin", "München", "Hamburg", "Köln", "Leipzig", "Düsseldorf"},
		address: func(n int, street, city, pc string) string {
			return street + " " + itoa(n) + ", " + pc + " " + city
		},
		postcode: func(g *ProfileProvider) string { return g.digits(5) },
	},
	"es_ES": {
		country:    "Spain",
		firstNames: []string{"Lucía", "Hugo", "Martina", "Martín", "Sofía", "Álvaro", "María", "Pablo", "Julia", "Andrés"},
		lastNames:  []string{"García", "Fernández", "González", "Rodríguez", "López", "Martínez", "Sánchez", "Pérez", "Gómez", "Núñez"},
		streets:    []string{"Calle Mayor", "Avenida de la Constitución", "Calle del Sol", "Paseo de Gracia", "Plaza de España"},
		cities:     []string{"Madrid", "Barcelona", "Sevilla", "Valencia", "Málaga", "Bilbao"},
		address: func(n int, street, city, pc string) string {
			return street + " " + itoa(n) + ", " + pc + " " + city
		},
		postcode: func(g *ProfileProvider) string { return g.digits(5) },
	},
	"it_IT": {
		country:    "Italy",
		firstNames: []string{"Leonardo", "Giulia", "Francesco", "Aurora", "Alessandro", "Sofia", "Niccolò", "Ginevra", "Matteo", "Beatrice"},
		lastNames:  []string{"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo", "Ricci", "Marino", "Greco"},
		streets:    []string{"Via Roma", "Via Garibaldi", "Corso Italia", "Via Dante", "Piazza del Duomo"},
		cities:     []string{"Roma", "Milano", "Napoli", "Torino", "Firenze", "Forlì"},
		address: func(n int, street, city, pc string) string {
			return street + " " + itoa(n) + ", " + pc + " " + city
		},
		postcode: func(g *ProfileProvider) string { return g.digits(5) },
	},
	"nl_NL": {
		country:    "Netherlands",
		firstNames: []string{"Daan", "Emma", "Sem", "Julia", "Lucas", "Tess", "Finn", "Zoë", "Levi", "Sanne"},
		lastNames:  []string{"de Jong", "Jansen", "de Vries", "van den Berg", "van Dijk", "Bakker", "Visser", "Smit", "Meijer", "de Boer"},
		streets:    []string{"Kerkstraat", "Dorpsstraat", "Molenweg", "Stationsplein", "Schoolstraat"},
		cities:     []string{"Amsterdam", "Rotterdam", "Utrecht", "Den Haag", "Eindhoven", "Groningen"},
		address: func(n int, street, city, pc string) string {
			return street + " " + itoa(n) + ", " + pc + " " + city
		},
		postcode: func(g *ProfileProvider) string { return g.digits(4) + " " + g.letters(2) },
	},
}
