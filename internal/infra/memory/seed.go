package memory

import "chemquest/internal/domain"

// SampleQuizzes is the starter question bank used when no database is configured
// and by `migrate --seed`.
func SampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"elements": {
			ID:    "elements",
			Title: "The Periodic Table",
			Questions: []domain.Question{
				{
					ID:     "el-1",
					Prompt: "What is the chemical symbol for sodium?",
					Options: []domain.Option{
						{ID: "a", Text: "So", Correct: false},
						{ID: "b", Text: "Na", Correct: true},
						{ID: "c", Text: "Sd", Correct: false},
						{ID: "d", Text: "N", Correct: false},
					},
					Points:      1,
					Explanation: "Sodium's symbol comes from its Latin name, natrium.",
				},
				{
					ID:     "el-2",
					Prompt: "Which element has atomic number 6?",
					Options: []domain.Option{
						{ID: "a", Text: "Oxygen", Correct: false},
						{ID: "b", Text: "Nitrogen", Correct: false},
						{ID: "c", Text: "Carbon", Correct: true},
						{ID: "d", Text: "Boron", Correct: false},
					},
					Points:      1,
					Explanation: "Carbon has six protons.",
				},
				{
					ID:     "el-3",
					Prompt: "Which group contains the noble gases?",
					Options: []domain.Option{
						{ID: "a", Text: "Group 1", Correct: false},
						{ID: "b", Text: "Group 2", Correct: false},
						{ID: "c", Text: "Group 17", Correct: false},
						{ID: "d", Text: "Group 18", Correct: true},
					},
					Points:      1,
					Explanation: "Noble gases have full valence shells and sit in group 18.",
				},
				{
					ID:     "el-4",
					Prompt: "What is the symbol for iron?",
					Options: []domain.Option{
						{ID: "a", Text: "Ir", Correct: false},
						{ID: "b", Text: "In", Correct: false},
						{ID: "c", Text: "Fe", Correct: true},
						{ID: "d", Text: "I", Correct: false},
					},
					Points:      1,
					Explanation: "Fe comes from the Latin ferrum.",
				},
				{
					ID:     "el-5",
					Prompt: "Which of these is a halogen?",
					Options: []domain.Option{
						{ID: "a", Text: "Chlorine", Correct: true},
						{ID: "b", Text: "Argon", Correct: false},
						{ID: "c", Text: "Calcium", Correct: false},
						{ID: "d", Text: "Sulfur", Correct: false},
					},
					Points:      1,
					Explanation: "Chlorine is in group 17 with the other halogens.",
				},
				{
					ID:     "el-6",
					Prompt: "How many protons does a helium atom have?",
					Options: []domain.Option{
						{ID: "a", Text: "1", Correct: false},
						{ID: "b", Text: "2", Correct: true},
						{ID: "c", Text: "3", Correct: false},
						{ID: "d", Text: "4", Correct: false},
					},
					Points:      1,
					Explanation: "Helium's atomic number is 2.",
				},
				{
					ID:     "el-7",
					Prompt: "Which element is the most electronegative?",
					Options: []domain.Option{
						{ID: "a", Text: "Oxygen", Correct: false},
						{ID: "b", Text: "Chlorine", Correct: false},
						{ID: "c", Text: "Fluorine", Correct: true},
						{ID: "d", Text: "Nitrogen", Correct: false},
					},
					Points:      1,
					Explanation: "Fluorine tops the Pauling scale at 3.98.",
				},
				{
					ID:     "el-8",
					Prompt: "What is the lightest element?",
					Options: []domain.Option{
						{ID: "a", Text: "Helium", Correct: false},
						{ID: "b", Text: "Hydrogen", Correct: true},
						{ID: "c", Text: "Lithium", Correct: false},
						{ID: "d", Text: "Carbon", Correct: false},
					},
					Points:      1,
					Explanation: "Hydrogen has a single proton and no neutrons in its common isotope.",
				},
			},
		},
		"reactions": {
			ID:    "reactions",
			Title: "Chemical Reactions",
			Questions: []domain.Question{
				{
					ID:     "rx-1",
					Prompt: "What type of reaction is 2H2 + O2 -> 2H2O?",
					Options: []domain.Option{
						{ID: "a", Text: "Decomposition", Correct: false},
						{ID: "b", Text: "Synthesis", Correct: true},
						{ID: "c", Text: "Single replacement", Correct: false},
						{ID: "d", Text: "Double replacement", Correct: false},
					},
					Points:      1,
					Explanation: "Two reactants combine into one product.",
				},
				{
					ID:     "rx-2",
					Prompt: "Which gas is produced when zinc reacts with hydrochloric acid?",
					Options: []domain.Option{
						{ID: "a", Text: "Oxygen", Correct: false},
						{ID: "b", Text: "Chlorine", Correct: false},
						{ID: "c", Text: "Hydrogen", Correct: true},
						{ID: "d", Text: "Carbon dioxide", Correct: false},
					},
					Points:      1,
					Explanation: "Zn + 2HCl -> ZnCl2 + H2.",
				},
				{
					ID:     "rx-3",
					Prompt: "Oxidation is the...",
					Options: []domain.Option{
						{ID: "a", Text: "Gain of electrons", Correct: false},
						{ID: "b", Text: "Loss of electrons", Correct: true},
						{ID: "c", Text: "Gain of protons", Correct: false},
						{ID: "d", Text: "Loss of neutrons", Correct: false},
					},
					Points:      1,
					Explanation: "OIL RIG: oxidation is loss, reduction is gain.",
				},
				{
					ID:     "rx-4",
					Prompt: "What does a catalyst do?",
					Options: []domain.Option{
						{ID: "a", Text: "Raises activation energy", Correct: false},
						{ID: "b", Text: "Is consumed by the reaction", Correct: false},
						{ID: "c", Text: "Lowers activation energy", Correct: true},
						{ID: "d", Text: "Changes the equilibrium constant", Correct: false},
					},
					Points:      1,
					Explanation: "Catalysts provide a lower-energy pathway and are not consumed.",
				},
				{
					ID:     "rx-5",
					Prompt: "Combustion of methane produces carbon dioxide and...",
					Options: []domain.Option{
						{ID: "a", Text: "Hydrogen", Correct: false},
						{ID: "b", Text: "Water", Correct: true},
						{ID: "c", Text: "Carbon monoxide only", Correct: false},
						{ID: "d", Text: "Ozone", Correct: false},
					},
					Points:      1,
					Explanation: "CH4 + 2O2 -> CO2 + 2H2O.",
				},
				{
					ID:     "rx-6",
					Prompt: "An exothermic reaction...",
					Options: []domain.Option{
						{ID: "a", Text: "Absorbs heat", Correct: false},
						{ID: "b", Text: "Releases heat", Correct: true},
						{ID: "c", Text: "Has no energy change", Correct: false},
						{ID: "d", Text: "Only happens at high pressure", Correct: false},
					},
					Points:      1,
					Explanation: "Exothermic reactions release energy to the surroundings.",
				},
			},
		},
		"acids-bases": {
			ID:    "acids-bases",
			Title: "Acids and Bases",
			Questions: []domain.Question{
				{
					ID:     "ab-1",
					Prompt: "What is the pH of pure water at 25 C?",
					Options: []domain.Option{
						{ID: "a", Text: "0", Correct: false},
						{ID: "b", Text: "5", Correct: false},
						{ID: "c", Text: "7", Correct: true},
						{ID: "d", Text: "14", Correct: false},
					},
					Points:      1,
					Explanation: "Pure water is neutral at pH 7.",
				},
				{
					ID:     "ab-2",
					Prompt: "Which of these is a strong acid?",
					Options: []domain.Option{
						{ID: "a", Text: "Acetic acid", Correct: false},
						{ID: "b", Text: "Hydrochloric acid", Correct: true},
						{ID: "c", Text: "Carbonic acid", Correct: false},
						{ID: "d", Text: "Citric acid", Correct: false},
					},
					Points:      1,
					Explanation: "HCl dissociates completely in water.",
				},
				{
					ID:     "ab-3",
					Prompt: "A Bronsted-Lowry base is a...",
					Options: []domain.Option{
						{ID: "a", Text: "Proton donor", Correct: false},
						{ID: "b", Text: "Proton acceptor", Correct: true},
						{ID: "c", Text: "Electron donor", Correct: false},
						{ID: "d", Text: "Neutron acceptor", Correct: false},
					},
					Points:      1,
					Explanation: "Bases accept H+ in the Bronsted-Lowry definition.",
				},
				{
					ID:     "ab-4",
					Prompt: "What do you get when an acid neutralizes a base?",
					Options: []domain.Option{
						{ID: "a", Text: "Salt and water", Correct: true},
						{ID: "b", Text: "Only hydrogen gas", Correct: false},
						{ID: "c", Text: "An oxide", Correct: false},
						{ID: "d", Text: "A metal", Correct: false},
					},
					Points:      1,
					Explanation: "Neutralization yields a salt and water.",
				},
				{
					ID:     "ab-5",
					Prompt: "Which indicator turns pink in basic solution?",
					Options: []domain.Option{
						{ID: "a", Text: "Litmus", Correct: false},
						{ID: "b", Text: "Methyl orange", Correct: false},
						{ID: "c", Text: "Phenolphthalein", Correct: true},
						{ID: "d", Text: "Bromothymol blue", Correct: false},
					},
					Points:      1,
					Explanation: "Phenolphthalein is colourless in acid and pink above about pH 8.2.",
				},
				{
					ID:     "ab-6",
					Prompt: "A solution with pH 3 is how many times more acidic than pH 5?",
					Options: []domain.Option{
						{ID: "a", Text: "2", Correct: false},
						{ID: "b", Text: "20", Correct: false},
						{ID: "c", Text: "100", Correct: true},
						{ID: "d", Text: "1000", Correct: false},
					},
					Points:      1,
					Explanation: "Each pH unit is a factor of ten in H+ concentration.",
				},
			},
		},
	}
}
