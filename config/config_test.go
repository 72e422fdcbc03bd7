package config_test

import (
	"os"
	"path/filepath"

	. "github.com/coffemugtester/youtwit/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	keys := []string{"OLLAMA_URL", "OLLAMA_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"YOUTWIT_DB", "YOUTWIT_CHUNK_SIZE", "YOUTWIT_CACHE_SIZE", "YOUTWIT_LANGUAGES",
		"YOUTWIT_LOG_LEVEL", "YOUTWIT_LOG_FORMAT"}

	BeforeEach(func() {
		for _, k := range keys {
			GinkgoT().Setenv(k, "")
			Expect(os.Unsetenv(k)).To(Succeed())
		}
	})

	It("falls back to defaults", func() {
		cfg := Load()
		Expect(cfg.OllamaURL).To(Equal("http://localhost:11434"))
		Expect(cfg.DBPath).To(Equal("youtwit.db"))
		Expect(cfg.ChunkSize).To(Equal(100))
		Expect(cfg.CacheSize).To(BeZero())
		Expect(cfg.Languages).To(Equal([]string{"en", "es", "de", "pt"}))
		Expect(cfg.LogLevel).To(Equal("info"))
	})

	It("reads the environment", func() {
		GinkgoT().Setenv("YOUTWIT_CHUNK_SIZE", "25")
		GinkgoT().Setenv("YOUTWIT_CACHE_SIZE", "not a number")
		GinkgoT().Setenv("YOUTWIT_LANGUAGES", "fr, it ,,")
		GinkgoT().Setenv("OPENAI_API_KEY", "sk-1")

		cfg := Load()
		Expect(cfg.ChunkSize).To(Equal(25))
		Expect(cfg.CacheSize).To(BeZero())
		Expect(cfg.Languages).To(Equal([]string{"fr", "it"}))
		Expect(cfg.OpenAIKey).To(Equal("sk-1"))
	})

	It("loads env files without overriding the environment", func() {
		dir := GinkgoT().TempDir()
		first := filepath.Join(dir, "first.env")
		second := filepath.Join(dir, "second.env")
		Expect(os.WriteFile(first, []byte("YOUTWIT_DB=first.db\nOLLAMA_MODEL=llama3\n"), 0644)).To(Succeed())
		Expect(os.WriteFile(second, []byte("YOUTWIT_DB=second.db\nOPENAI_MODEL=gpt-x\n"), 0644)).To(Succeed())
		GinkgoT().Setenv("OLLAMA_MODEL", "from-env")

		LoadEnvFiles(first, filepath.Join(dir, "missing.env"), second)
		DeferCleanup(func() {
			os.Unsetenv("YOUTWIT_DB")
			os.Unsetenv("OPENAI_MODEL")
		})

		cfg := Load()
		Expect(cfg.DBPath).To(Equal("first.db"))
		Expect(cfg.OllamaModel).To(Equal("from-env"))
		Expect(cfg.OpenAIModel).To(Equal("gpt-x"))
	})

	It("looks in the working directory first", func() {
		Expect(DefaultEnvFiles()[0]).To(Equal(".env"))
	})
})
