package quizgen

import (
	"fmt"

	"speakroots/internal/models"
	"speakroots/internal/prng"
)

type scienceFact struct {
	prompt, answer string
	wrong          []string
	minBand        int
}

var scienceFacts = []scienceFact{
	{"How many legs does an insect have?", "6", []string{"8", "4", "10"}, 1},
	{"How many legs does a spider have?", "8", []string{"6", "10", "4"}, 1},
	{"What do plants need from the Sun to make food?", "Light", []string{"Sound", "Heat only", "Wind"}, 1},
	{"Which animal is a mammal?", "Whale", []string{"Shark", "Frog", "Eagle"}, 1},
	{"What is frozen water called?", "Ice", []string{"Steam", "Fog", "Rain"}, 1},
	{"Which sense do you use your nose for?", "Smell", []string{"Taste", "Touch", "Hearing"}, 1},
	{"What do bees make?", "Honey", []string{"Milk", "Silk", "Wax paper"}, 1},
	{"Which season comes after winter?", "Spring", []string{"Summer", "Autumn", "Winter"}, 1},
	{"What does a caterpillar turn into?", "Butterfly", []string{"Bee", "Spider", "Beetle"}, 1},
	{"Which body part pumps blood?", "Heart", []string{"Lungs", "Stomach", "Brain"}, 1},
	{"What gas do humans need to breathe in?", "Oxygen", []string{"Carbon dioxide", "Nitrogen", "Helium"}, 1},
	{"Where does a fish breathe through?", "Gills", []string{"Lungs", "Skin only", "Fins"}, 1},
	{"What is the closest star to Earth?", "The Sun", []string{"The Moon", "Polaris", "Sirius"}, 2},
	{"What are the three states of matter?", "Solid, liquid, gas", []string{"Hot, warm, cold", "Rock, water, air", "Ice, snow, rain"}, 2},
	{"What force pulls objects toward Earth?", "Gravity", []string{"Magnetism", "Friction", "Electricity"}, 2},
	{"Which part of the plant soaks up water from the soil?", "Roots", []string{"Leaves", "Flowers", "Stem"}, 2},
	{"What gas do plants take in from the air?", "Carbon dioxide", []string{"Oxygen", "Hydrogen", "Helium"}, 2},
	{"What is the largest planet in our solar system?", "Jupiter", []string{"Saturn", "Earth", "Neptune"}, 2},
	{"At what temperature in Celsius does water boil at sea level?", "100", []string{"90", "50", "212"}, 2},
	{"At what temperature in Celsius does water freeze?", "0", []string{"10", "32", "100"}, 2},
	{"What do we call an animal that eats only plants?", "Herbivore", []string{"Carnivore", "Omnivore", "Predator"}, 2},
	{"What do we call an animal that eats only meat?", "Carnivore", []string{"Herbivore", "Omnivore", "Producer"}, 2},
	{"Which organ helps you breathe?", "Lungs", []string{"Liver", "Kidneys", "Heart"}, 2},
	{"What is the hardest natural substance?", "Diamond", []string{"Gold", "Iron", "Quartz"}, 2},
	{"Which planet is known as the Red Planet?", "Mars", []string{"Venus", "Mercury", "Jupiter"}, 2},
	{"What causes day and night on Earth?", "Earth spinning on its axis", []string{"Earth orbiting the Sun", "The Moon's orbit", "Clouds"}, 2},
	{"How many bones are in the adult human body?", "206", []string{"186", "256", "300"}, 3},
	{"What is the chemical symbol for water?", "H2O", []string{"CO2", "O2", "NaCl"}, 3},
	{"What is the chemical symbol for gold?", "Au", []string{"Ag", "Go", "Gd"}, 3},
	{"Which part of the cell contains genetic material?", "Nucleus", []string{"Cell wall", "Cytoplasm", "Membrane"}, 3},
	{"What process do plants use to make food from sunlight?", "Photosynthesis", []string{"Respiration", "Digestion", "Evaporation"}, 3},
	{"What is the powerhouse of the cell?", "Mitochondria", []string{"Ribosome", "Nucleus", "Vacuole"}, 3},
	{"What type of rock forms from cooled lava?", "Igneous", []string{"Sedimentary", "Metamorphic", "Limestone"}, 3},
	{"What is the unit of electrical resistance?", "Ohm", []string{"Volt", "Ampere", "Watt"}, 3},
	{"Which blood cells fight infection?", "White blood cells", []string{"Red blood cells", "Platelets", "Plasma"}, 3},
	{"What is the speed of light in a vacuum, roughly in km per second?", "300000", []string{"3000", "150000", "1000000"}, 4},
	{"What is the atomic number of carbon?", "6", []string{"12", "8", "14"}, 4},
	{"Which particle has a negative charge?", "Electron", []string{"Proton", "Neutron", "Photon"}, 4},
	{"What is Newton's second law?", "F = ma", []string{"E = mc²", "V = IR", "P = mv"}, 4},
	{"What is the pH of pure water?", "7", []string{"0", "14", "5"}, 4},
	{"What is the most abundant gas in Earth's atmosphere?", "Nitrogen", []string{"Oxygen", "Carbon dioxide", "Argon"}, 4},
	{"What molecule carries genetic information?", "DNA", []string{"ATP", "Glucose", "Protein"}, 4},
}

var planetOrder = []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

var ordinals = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth"}

// ScienceFact asks a fact from the bank, limited to facts at or below band
func ScienceFact(band int) Generator {
	return Generator{Name: fmt.Sprintf("science_fact_%d", band), Subject: models.SubjectScience, Fn: func(r prng.Source) (Candidate, error) {
		eligible := make([]scienceFact, 0, len(scienceFacts))
		for _, f := range scienceFacts {
			if band <= 0 || f.minBand <= band {
				eligible = append(eligible, f)
			}
		}
		if len(eligible) == 0 {
			return Candidate{}, generatorError("science_fact", "no facts for band %d", band)
		}
		f := prng.Pick(r, eligible)
		return Candidate{Prompt: f.prompt, Choices: f.wrong, Answer: f.answer}, nil
	}}
}

// PlanetOrder asks which planet sits at a given position from the Sun
func PlanetOrder() Generator {
	return Generator{Name: "planet_order", Subject: models.SubjectScience, Fn: func(r prng.Source) (Candidate, error) {
		i := prng.Intn(r, len(planetOrder))
		return Candidate{
			Prompt:  fmt.Sprintf("Which planet is %s from the Sun?", ordinals[i]),
			Choices: sampleOthers(r, planetOrder, distractorsPerQuestion, planetOrder[i]),
			Answer:  planetOrder[i],
		}, nil
	}}
}
