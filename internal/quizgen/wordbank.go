package quizgen

type wordPair struct {
	word, match string
}

var synonyms = []wordPair{
	{"happy", "glad"}, {"big", "large"}, {"small", "tiny"}, {"fast", "quick"},
	{"begin", "start"}, {"finish", "complete"}, {"smart", "clever"}, {"angry", "mad"},
	{"scared", "afraid"}, {"shout", "yell"}, {"look", "see"}, {"easy", "simple"},
	{"pretty", "beautiful"}, {"rich", "wealthy"}, {"hard", "difficult"}, {"quiet", "silent"},
	{"sad", "unhappy"}, {"wise", "sensible"}, {"jump", "leap"}, {"gift", "present"},
	{"choose", "pick"}, {"correct", "right"}, {"brave", "bold"}, {"tired", "sleepy"},
	{"odd", "strange"}, {"rapid", "swift"}, {"enormous", "huge"}, {"assist", "help"},
	{"purchase", "buy"}, {"reply", "answer"}, {"damp", "moist"}, {"giggle", "laugh"},
	{"ancient", "old"}, {"sturdy", "strong"}, {"timid", "shy"}, {"vanish", "disappear"},
	{"weary", "exhausted"}, {"delighted", "pleased"}, {"fix", "repair"}, {"unite", "join"},
}

var antonyms = []wordPair{
	{"hot", "cold"}, {"up", "down"}, {"big", "small"}, {"fast", "slow"},
	{"happy", "sad"}, {"open", "closed"}, {"day", "night"}, {"wet", "dry"},
	{"light", "dark"}, {"full", "empty"}, {"old", "new"}, {"early", "late"},
	{"push", "pull"}, {"loud", "quiet"}, {"tall", "short"},
	{"win", "lose"}, {"buy", "sell"}, {"first", "last"}, {"give", "take"},
	{"strong", "weak"}, {"clean", "dirty"}, {"heavy", "light"}, {"inside", "outside"},
	{"arrive", "depart"}, {"ancient", "modern"}, {"accept", "refuse"},
	{"generous", "selfish"}, {"expand", "shrink"}, {"victory", "defeat"}, {"rare", "common"},
	{"maximum", "minimum"}, {"include", "exclude"}, {"increase", "decrease"}, {"shallow", "deep"},
}

var plurals = []wordPair{
	{"cat", "cats"}, {"dog", "dogs"}, {"box", "boxes"}, {"bus", "buses"},
	{"baby", "babies"}, {"city", "cities"}, {"child", "children"}, {"mouse", "mice"},
	{"tooth", "teeth"}, {"foot", "feet"}, {"man", "men"}, {"woman", "women"},
	{"leaf", "leaves"}, {"knife", "knives"}, {"wolf", "wolves"}, {"sheep", "sheep"},
	{"fish", "fish"}, {"goose", "geese"}, {"person", "people"}, {"potato", "potatoes"},
	{"tomato", "tomatoes"}, {"hero", "heroes"}, {"church", "churches"}, {"wish", "wishes"},
	{"story", "stories"}, {"key", "keys"}, {"toy", "toys"}, {"half", "halves"},
	{"ox", "oxen"}, {"cactus", "cacti"}, {"deer", "deer"}, {"glass", "glasses"},
}

var pastTenses = []wordPair{
	{"walk", "walked"}, {"play", "played"}, {"jump", "jumped"}, {"go", "went"},
	{"eat", "ate"}, {"see", "saw"}, {"run", "ran"}, {"swim", "swam"},
	{"write", "wrote"}, {"read", "read"}, {"sing", "sang"}, {"drink", "drank"},
	{"take", "took"}, {"give", "gave"}, {"come", "came"}, {"think", "thought"},
	{"buy", "bought"}, {"catch", "caught"}, {"teach", "taught"}, {"fly", "flew"},
	{"draw", "drew"}, {"sleep", "slept"}, {"keep", "kept"}, {"find", "found"},
	{"make", "made"}, {"say", "said"}, {"stop", "stopped"}, {"cry", "cried"},
	{"carry", "carried"}, {"bring", "brought"}, {"begin", "began"}, {"freeze", "froze"},
	{"choose", "chose"}, {"speak", "spoke"}, {"steal", "stole"}, {"ride", "rode"},
}

var irregularParticiples = map[string]string{
	"go": "gone", "eat": "eaten", "see": "seen", "swim": "swum", "write": "written",
	"sing": "sung", "drink": "drunk", "take": "taken", "give": "given", "fly": "flown",
	"draw": "drawn", "begin": "begun", "freeze": "frozen", "choose": "chosen",
	"speak": "spoken", "steal": "stolen", "ride": "ridden", "run": "run", "come": "come",
}

var articleNouns = []string{
	"apple", "banana", "egg", "orange", "umbrella", "elephant", "island", "owl",
	"cat", "hat", "igloo", "ant", "house", "hour", "unicorn", "honest man",
	"octopus", "car", "ice cream", "uncle", "eagle", "pencil", "engine", "idea",
	"university", "onion", "arrow", "book", "European city", "ear", "MRI scan", "tree",
}

// articleFor returns "a" or "an" for nouns in articleNouns
func articleFor(noun string) string {
	switch noun {
	case "hour", "honest man", "MRI scan":
		return "an"
	case "unicorn", "university", "European city":
		return "a"
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

type agreementSubject struct {
	text     string
	singular bool
}

var agreementSubjects = []agreementSubject{
	{"She", true}, {"He", true}, {"My brother", true}, {"The teacher", true}, {"Our cat", true},
	{"They", false}, {"We", false}, {"I", false}, {"The dogs", false}, {"My friends", false},
}

type agreementVerb struct {
	base, third, object string
}

var agreementVerbs = []agreementVerb{
	{"walk", "walks", "to school"},
	{"play", "plays", "in the park"},
	{"read", "reads", "a book"},
	{"eat", "eats", "breakfast"},
	{"watch", "watches", "the birds"},
	{"go", "goes", "to the library"},
	{"brush", "brushes", "the puppy"},
	{"fly", "flies", "a kite"},
	{"carry", "carries", "a backpack"},
	{"sing", "sings", "a song"},
}

type prepositionSentence struct {
	sentence, answer string
}

var prepositions = []string{"in", "on", "under", "behind", "between", "over", "at", "into", "across", "beside"}

var prepositionSentences = []prepositionSentence{
	{"The cat is hiding ___ the bed.", "under"},
	{"The book is ___ the table.", "on"},
	{"The fish swims ___ the water.", "in"},
	{"The bird flew ___ the house.", "over"},
	{"The ball is ___ the two boxes.", "between"},
	{"We will meet ___ noon.", "at"},
	{"She jumped ___ the pool.", "into"},
	{"The dog ran ___ the street.", "across"},
	{"The car is parked ___ the garage door.", "behind"},
	{"Sit ___ me on the bench.", "beside"},
	{"My birthday is ___ July.", "in"},
	{"The picture hangs ___ the wall.", "on"},
	{"The moon is ___ the clouds tonight.", "behind"},
	{"He lives ___ 12 Oak Street.", "at"},
	{"The bridge goes ___ the river.", "across"},
	{"The keys fell ___ the sofa cushions.", "between"},
}

type prefixWord struct {
	base, prefix string
}

var prefixWords = []prefixWord{
	{"happy", "un"}, {"kind", "un"}, {"fair", "un"}, {"lock", "un"}, {"tidy", "un"},
	{"agree", "dis"}, {"like", "dis"}, {"honest", "dis"}, {"appear", "dis"}, {"obey", "dis"},
	{"possible", "im"}, {"polite", "im"}, {"patient", "im"}, {"perfect", "im"},
	{"correct", "in"}, {"complete", "in"}, {"visible", "in"}, {"active", "in"},
	{"regular", "ir"}, {"responsible", "ir"}, {"legal", "il"}, {"logical", "il"},
}

var oppositePrefixes = []string{"un", "dis", "im", "in", "ir", "il"}

type spellingWord struct {
	word, hint string
	misspellings []string
}

var spellingWords = []spellingWord{
	{"because", "for the reason that", []string{"becuase", "becaus", "beacause"}},
	{"friend", "a person you like and trust", []string{"freind", "frend", "friennd"}},
	{"beautiful", "very pretty", []string{"beutiful", "beautifull", "beatiful"}},
	{"necessary", "needed", []string{"neccessary", "necesary", "nessecary"}},
	{"separate", "apart", []string{"seperate", "separete", "seprate"}},
	{"believe", "think something is true", []string{"beleive", "belive", "beleave"}},
	{"receive", "get something", []string{"recieve", "receeve", "resieve"}},
	{"library", "a place to borrow books", []string{"libary", "liberry", "librery"}},
	{"February", "the second month", []string{"Febuary", "Februery", "Febrary"}},
	{"Wednesday", "the middle of the week", []string{"Wensday", "Wednsday", "Wendesday"}},
	{"tomorrow", "the day after today", []string{"tommorow", "tomorow", "tommorrow"}},
	{"different", "not the same", []string{"diffrent", "diferent", "differant"}},
	{"surprise", "something unexpected", []string{"suprise", "surprize", "serprise"}},
	{"calendar", "a chart of days and months", []string{"calender", "calandar", "callendar"}},
	{"government", "the group that runs a country", []string{"goverment", "governmant", "guvernment"}},
	{"island", "land surrounded by water", []string{"iland", "islend", "ilsand"}},
	{"knowledge", "what you know", []string{"knowlege", "nowledge", "knowledg"}},
	{"rhythm", "a regular beat", []string{"rythm", "rhythem", "rhytm"}},
	{"science", "the study of the natural world", []string{"sience", "scince", "sciense"}},
	{"weird", "very strange", []string{"wierd", "weerd", "wired"}},
	{"answer", "a reply to a question", []string{"anser", "answere", "awnser"}},
	{"people", "more than one person", []string{"peple", "poeple", "peeple"}},
	{"would", "past form of will", []string{"wuold", "woud", "wood"}},
	{"enough", "as much as needed", []string{"enuf", "enogh", "enouph"}},
	{"restaurant", "a place to buy meals", []string{"resturant", "restaraunt", "restorant"}},
	{"neighbour", "a person living next door", []string{"nieghbour", "naybour", "neighbur"}},
	{"environment", "the world around us", []string{"enviroment", "envirnment", "environmant"}},
	{"definitely", "without doubt", []string{"definately", "definatly", "defenitely"}},
	{"temperature", "how hot or cold something is", []string{"temprature", "temperture", "tempreture"}},
	{"vacuum", "a space with nothing in it", []string{"vaccum", "vacum", "vaccuum"}},
	{"accommodate", "make room for", []string{"accomodate", "acommodate", "accommadate"}},
	{"occasion", "a special event", []string{"ocassion", "occassion", "ocasion"}},
	{"disappear", "vanish", []string{"dissapear", "disapear", "dissappear"}},
	{"embarrass", "make someone feel awkward", []string{"embarass", "embarras", "embaress"}},
	{"committee", "a group chosen to decide things", []string{"commitee", "comittee", "committe"}},
	{"exercise", "physical activity", []string{"excercise", "exersise", "exercize"}},
	{"guarantee", "a firm promise", []string{"garantee", "guarentee", "gaurantee"}},
	{"mischievous", "playfully naughty", []string{"mischievious", "mischevous", "mischeivous"}},
	{"pronunciation", "how a word is said", []string{"pronounciation", "pronuncation", "prononciation"}},
	{"thorough", "complete and careful", []string{"thurough", "thorogh", "thourough"}},
}
