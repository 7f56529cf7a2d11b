package catalog

import "github.com/alexanderramin/syllabus/internal/domain"

// DefaultFile is the built-in curriculum.
func DefaultFile() *File {
	return &File{Domains: []DomainFile{
		{
			ID:    "ai-fundamentals",
			Title: "AI Fundamentals",
			Modules: []ModuleFile{
				{ID: "m1", Name: "Introduction to Neural Networks", Description: "How neurons, layers and weights imitate the way a brain processes signals."},
				{ID: "m2", Name: "A Short History of Machine Learning", Description: "From statistical roots to the deep learning revolution."},
				{ID: "m3", Name: "Data Bias Analysis", Description: "Spot hidden discrimination in training data and build fairer systems."},
				{ID: "m4", Name: "Algorithm Ethics", Description: "Technical limits and social responsibility in driving and medical decisions."},
				{ID: "m1-extra", Name: "Backpropagation", Description: "Gradient descent and the chain rule behind how models learn."},
				{ID: "m1-extra2", Name: "Convolutional Networks", Description: "Networks built for grid data such as images and video."},
			},
		},
		{
			ID:    "generative-ai",
			Title: "Generative AI",
			Modules: []ModuleFile{
				{ID: "m5", Name: "How Large Language Models Work", Description: "The transformer, attention and next-token prediction."},
				{ID: "m6", Name: "Prompt Engineering", Description: "Precise instructions that steer a model toward professional output."},
				{ID: "m7", Name: "Image Generation", Description: "Diffusion models and how text-to-image changes visual communication."},
				{ID: "m8", Name: "Multimodal Interaction", Description: "Combining vision, sound and text into one experience."},
				{ID: "m2-extra", Name: "LoRA Fine-Tuning", Description: "Adapting large models to a domain on a small compute budget."},
				{ID: "m2-extra2", Name: "Long-Context Modeling", Description: "Working with inputs of a million tokens and whole-book retrieval."},
			},
		},
		{
			ID:    "real-world-apps",
			Title: "Applied Practice",
			Modules: []ModuleFile{
				{ID: "m9", Name: "AI-Assisted Programming", Description: "Coding assistants and the new shape of software engineering."},
				{ID: "m10", Name: "AI in Healthcare", Description: "Imaging diagnosis, drug discovery and medical records."},
				{ID: "m11", Name: "Marketing Automation", Description: "Behavior prediction and generated content for one-to-one messaging."},
				{ID: "m12", Name: "Personalized Education", Description: "AI tutors that follow each learner's pace and interests."},
				{ID: "m3-extra", Name: "Financial Risk Modeling", Description: "Real-time transaction monitoring that stops fraud within milliseconds."},
			},
		},
		{
			ID:    "future-tech",
			Title: "Future Technology",
			Modules: []ModuleFile{
				{ID: "m13", Name: "Embodied Intelligence", Description: "Robots that perceive, plan and act in the physical world."},
				{ID: "m14", Name: "Artificial General Intelligence", Description: "Systems that learn and reason at human level across many fields."},
				{ID: "m15", Name: "Quantum Computing", Description: "What qubits could offer to model training."},
				{ID: "m16", Name: "Human-AI Symbiosis", Description: "Brain-computer interfaces and wearables."},
				{ID: "m4-extra", Name: "Neuromorphic Computing", Description: "Chips modeled on the brain for low-power inference."},
			},
		},
	}}
}

// Default returns the built-in catalog.
func Default() *domain.Catalog {
	c, err := Convert(DefaultFile())
	if err != nil {
		panic("catalog: built-in catalog is invalid: " + err.Error())
	}
	return c
}
